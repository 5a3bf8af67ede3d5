// Package testing provides shared test utilities: builders for wizard
// steps, mocks for the submit backends, and small helpers.
//
// Usage:
//
//	steps := testing.NewStepBuilder().
//	    Step("Account", testing.Text("email")).
//	    Step("Plan", testing.Checkbox("pro")).
//	    Build()
//
//	putter := &testing.MockObjectPutter{}
//	putter.On("PutObject", mock.Anything, "forms", mock.Anything, "application/yaml", mock.Anything).Return(nil)
package testing
