// Package form owns the values entered into a multi-step form.
//
// A State holds one binding per field for the lifetime of the wizard, so
// values survive navigation between steps. Widgets built by State.Group
// write straight into those bindings; State.Values returns a typed
// snapshot suitable for schema validation and submission.
package form
