package stepper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/stepform/internal/form"
	"github.com/imamik/stepform/internal/schema"
)

const millionMessage = "Because you said you are a millionaire you need to have 1 million"

// recordingObserver captures observer callbacks.
type recordingObserver struct {
	advanced   [][2]int
	retreated  [][2]int
	failed     []int
	submitErrs []error
	elapsed    []time.Duration
}

func (r *recordingObserver) Advanced(from, to int) { r.advanced = append(r.advanced, [2]int{from, to}) }
func (r *recordingObserver) Retreated(from, to int) {
	r.retreated = append(r.retreated, [2]int{from, to})
}
func (r *recordingObserver) ValidationFailed(step int, _ error) {
	r.failed = append(r.failed, step)
}
func (r *recordingObserver) SubmitResolved(elapsed time.Duration, err error) {
	r.elapsed = append(r.elapsed, elapsed)
	r.submitErrs = append(r.submitErrs, err)
}

// countingValidator counts calls and fails when fail is set.
type countingValidator struct {
	calls int
	fail  bool
}

func (c *countingValidator) Validate(map[string]any) error {
	c.calls++
	if c.fail {
		return &schema.ValidationError{Schema: "counting", Fields: map[string]string{"x": "bad"}}
	}
	return nil
}

func bankAccounts(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.CompileJSON("Bank Accounts", []byte(`{
		"type": "object",
		"required": ["money"],
		"properties": {"money": {"type": "number"}},
		"if": {"properties": {"millionaire": {"const": true}}, "required": ["millionaire"]},
		"then": {"properties": {"money": {"minimum": 1000000}}}
	}`), schema.Messages{"money": {"minimum": millionMessage}})
	require.NoError(t, err)
	return s
}

func threeSteps(t *testing.T) []Step {
	return []Step{
		{Label: "Personal Data", Fields: []form.Field{
			{Name: "firstName", Kind: form.KindText},
			{Name: "millionaire", Kind: form.KindCheckbox, Initial: false},
		}},
		{Label: "Bank Accounts", Fields: []form.Field{
			{Name: "money", Kind: form.KindNumber, Initial: 0},
		}, Schema: bankAccounts(t)},
		{Label: "More Info", Fields: []form.Field{
			{Name: "description", Kind: form.KindText},
		}},
	}
}

func allFields(steps []Step) []form.Field {
	var fields []form.Field
	for _, s := range steps {
		fields = append(fields, s.Fields...)
	}
	return fields
}

func noopSubmit(context.Context, form.Values) error { return nil }

func TestNew_Errors(t *testing.T) {
	_, err := New(nil, noopSubmit)
	assert.ErrorIs(t, err, ErrNoSteps)

	_, err = New([]Step{{Label: "only"}}, nil)
	assert.ErrorIs(t, err, ErrNoSubmitHandler)
}

func TestAdvance_ValidDataMovesForward(t *testing.T) {
	validators := []*countingValidator{{}, {}, {}, {}}
	steps := make([]Step, len(validators))
	for i, v := range validators {
		steps[i] = Step{Label: string(rune('A' + i)), Schema: v}
	}

	seq, err := New(steps, noopSubmit)
	require.NoError(t, err)

	for i := 0; i < len(steps)-1; i++ {
		tr, err := seq.Advance(form.Values{})
		require.NoError(t, err)
		assert.Equal(t, Advanced, tr)
		assert.Equal(t, i+1, seq.Active())
		assert.Equal(t, 1, validators[i].calls, "only the active step's schema runs")
	}

	tr, err := seq.Advance(form.Values{})
	require.NoError(t, err)
	assert.Equal(t, SubmitRequested, tr)
	assert.True(t, seq.Pending())
	assert.Equal(t, len(steps)-1, seq.Active())
}

func TestAdvance_InvalidDataStays(t *testing.T) {
	for i := 0; i < 3; i++ {
		steps := []Step{{Label: "a"}, {Label: "b"}, {Label: "c"}}
		steps[i].Schema = &countingValidator{fail: true}

		obs := &recordingObserver{}
		seq, err := New(steps, noopSubmit, WithObserver(obs))
		require.NoError(t, err)
		for j := 0; j < i; j++ {
			_, err := seq.Advance(form.Values{})
			require.NoError(t, err)
		}

		_, err = seq.Advance(form.Values{})
		ve, ok := schema.AsValidationError(err)
		require.True(t, ok)
		assert.NotEmpty(t, ve.Fields)
		assert.Equal(t, i, seq.Active())
		assert.False(t, seq.Pending())
		assert.Equal(t, []int{i}, obs.failed)
	}
}

func TestRetreat_SkipsValidation(t *testing.T) {
	v := &countingValidator{fail: true}
	seq, err := New([]Step{{Label: "a", Schema: v}, {Label: "b", Schema: v}}, noopSubmit)
	require.NoError(t, err)

	assert.ErrorIs(t, seq.Retreat(), ErrFirstStep)

	v.fail = false
	_, err = seq.Advance(form.Values{})
	require.NoError(t, err)
	v.fail = true
	calls := v.calls

	require.NoError(t, seq.Retreat())
	assert.Equal(t, 0, seq.Active())
	assert.Equal(t, calls, v.calls)
}

func TestValuesSurviveNavigation(t *testing.T) {
	steps := threeSteps(t)
	state, err := form.NewState(allFields(steps))
	require.NoError(t, err)
	seq, err := New(steps, noopSubmit)
	require.NoError(t, err)

	require.NoError(t, state.Set("firstName", "Ada"))
	require.NoError(t, state.Set("millionaire", true))
	before := state.Subset(steps[0].FieldNames())

	_, err = seq.Advance(state.Values())
	require.NoError(t, err)
	require.Equal(t, 1, seq.Active())
	require.NoError(t, seq.Retreat())
	require.Equal(t, 0, seq.Active())

	assert.Equal(t, before, state.Subset(steps[0].FieldNames()))
}

func TestMillionaireScenario(t *testing.T) {
	steps := threeSteps(t)
	state, err := form.NewState(allFields(steps))
	require.NoError(t, err)
	seq, err := New(steps, noopSubmit, WithLogger(testr.New(t)))
	require.NoError(t, err)

	require.NoError(t, state.Set("millionaire", true))
	_, err = seq.Advance(state.Values())
	require.NoError(t, err)

	require.NoError(t, state.Set("money", 500))
	_, err = seq.Advance(state.Values())
	ve, ok := schema.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, millionMessage, ve.Fields["money"])
	assert.Equal(t, 1, seq.Active())

	require.NoError(t, state.Set("money", 1_500_000))
	tr, err := seq.Advance(state.Values())
	require.NoError(t, err)
	assert.Equal(t, Advanced, tr)
	assert.Equal(t, 2, seq.Active())
}

func TestSubmit_PendingBlocksTransitions(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := &recordingObserver{}

	var got form.Values
	submit := func(_ context.Context, values form.Values) error {
		got = values
		return nil
	}

	seq, err := New([]Step{{Label: "a"}, {Label: "b"}}, submit, WithObserver(obs))
	require.NoError(t, err)
	seq.now = func() time.Time { return now }

	_, err = seq.Advance(form.Values{})
	require.NoError(t, err)
	tr, err := seq.Advance(form.Values{"k": "v"})
	require.NoError(t, err)
	require.Equal(t, SubmitRequested, tr)

	_, err = seq.Advance(form.Values{})
	assert.ErrorIs(t, err, ErrSubmitPending)
	assert.ErrorIs(t, seq.Retreat(), ErrSubmitPending)
	assert.False(t, seq.Completed())

	now = now.Add(3 * time.Second)
	require.NoError(t, seq.Submit(context.Background(), form.Values{"k": "v"}))
	assert.True(t, seq.Completed())
	assert.False(t, seq.Pending())
	assert.Equal(t, form.Values{"k": "v"}, got)
	assert.Equal(t, []time.Duration{3 * time.Second}, obs.elapsed)
	assert.True(t, seq.StepDone(0))
	assert.True(t, seq.StepDone(1))

	_, err = seq.Advance(form.Values{})
	assert.ErrorIs(t, err, ErrCompleted)
	assert.ErrorIs(t, seq.Retreat(), ErrCompleted)
}

func TestSubmit_HandlerCalledOnce(t *testing.T) {
	calls := 0
	submit := func(context.Context, form.Values) error {
		calls++
		return nil
	}

	seq, err := New([]Step{{Label: "only"}}, submit)
	require.NoError(t, err)

	tr, err := seq.Advance(form.Values{})
	require.NoError(t, err)
	assert.Equal(t, SubmitRequested, tr)

	require.NoError(t, seq.Submit(context.Background(), form.Values{}))
	assert.ErrorIs(t, seq.Submit(context.Background(), form.Values{}), ErrNoSubmitPending)
	assert.Equal(t, 1, calls)
}

func TestSubmit_FailureIsNotRetried(t *testing.T) {
	boom := errors.New("backend down")
	calls := 0
	submit := func(context.Context, form.Values) error {
		calls++
		return boom
	}

	obs := &recordingObserver{}
	seq, err := New([]Step{{Label: "only"}}, submit, WithObserver(obs), WithLogger(testr.New(t)))
	require.NoError(t, err)

	_, err = seq.Advance(form.Values{})
	require.NoError(t, err)

	err = seq.ResolveSubmit(seq.RunSubmit(context.Background(), form.Values{}))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.False(t, seq.Pending())
	assert.False(t, seq.Completed())
	assert.ErrorIs(t, seq.LastSubmitErr(), boom)
	assert.Equal(t, []error{boom}, obs.submitErrs)

	// The user may submit again by advancing.
	tr, err := seq.Advance(form.Values{})
	require.NoError(t, err)
	assert.Equal(t, SubmitRequested, tr)
	assert.NoError(t, seq.LastSubmitErr())
}

func TestResolveSubmit_WithoutPending(t *testing.T) {
	seq, err := New([]Step{{Label: "only"}}, noopSubmit)
	require.NoError(t, err)
	assert.ErrorIs(t, seq.ResolveSubmit(nil), ErrNoSubmitPending)
}

func TestObserver_Transitions(t *testing.T) {
	obs := &recordingObserver{}
	seq, err := New([]Step{{Label: "a"}, {Label: "b"}, {Label: "c"}}, noopSubmit, WithObserver(obs), WithObserver(nil))
	require.NoError(t, err)

	_, _ = seq.Advance(form.Values{})
	_, _ = seq.Advance(form.Values{})
	_ = seq.Retreat()

	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, obs.advanced)
	assert.Equal(t, [][2]int{{2, 1}}, obs.retreated)
}

func TestAccessors(t *testing.T) {
	steps := []Step{{Label: "a", Fields: []form.Field{{Name: "x"}, {Name: "y"}}}, {Label: "b"}}
	seq, err := New(steps, noopSubmit)
	require.NoError(t, err)

	assert.Equal(t, 2, seq.Len())
	assert.Equal(t, "a", seq.ActiveStep().Label)
	assert.Equal(t, []string{"x", "y"}, seq.ActiveStep().FieldNames())
	assert.False(t, seq.IsLast())
	assert.False(t, seq.StepDone(0))

	returned := seq.Steps()
	returned[0].Label = "changed"
	assert.Equal(t, "a", seq.ActiveStep().Label)

	assert.Equal(t, "advanced", Advanced.String())
	assert.Equal(t, "submit-requested", SubmitRequested.String())
	assert.Equal(t, "transition(9)", Transition(9).String())
}
