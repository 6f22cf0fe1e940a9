package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"weekplanner/internal/apperr"
	"weekplanner/internal/llm"
	"weekplanner/internal/schedule"
)

// blockingGenerator parks every call until released, so a test can
// interleave controller transitions with an in-flight request.
type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
	resp    llm.ContentResponse
	err     error
}

func (g *blockingGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	g.started <- struct{}{}
	<-g.release
	return g.resp, g.err
}

func readyController(t *testing.T, gen *mockTextGenerator) *Controller {
	t.Helper()
	c := NewController(NewPlanner(gen))
	if err := c.GeneratePlan(context.Background(), schedule.DefaultAppState(), nil); err != nil {
		t.Fatalf("generating plan: %v", err)
	}
	return c
}

func TestControllerHappyPath(t *testing.T) {
	gen := &mockTextGenerator{responses: []llm.ContentResponse{
		{Content: validPlanJSON()},
		{Content: validShoppingJSON()},
	}}
	c := NewController(NewPlanner(gen))

	if got := c.Snapshot().Stage; got != StageIdle {
		t.Fatalf("initial stage = %q, want idle", got)
	}

	if err := c.GeneratePlan(context.Background(), schedule.DefaultAppState(), nil); err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	snap := c.Snapshot()
	if snap.Stage != StagePlanReady {
		t.Fatalf("stage after plan = %q, want plan-ready", snap.Stage)
	}
	if len(snap.WeekPlan) != 7 {
		t.Errorf("got %d days, want 7", len(snap.WeekPlan))
	}
	if len(snap.ShoppingTrips) != 0 {
		t.Errorf("trips present before confirmation")
	}

	if err := c.ConfirmPlan(context.Background()); err != nil {
		t.Fatalf("ConfirmPlan: %v", err)
	}
	snap = c.Snapshot()
	if snap.Stage != StageComplete {
		t.Fatalf("stage after confirm = %q, want complete", snap.Stage)
	}
	if len(snap.ShoppingTrips) != 1 {
		t.Errorf("got %d trips, want 1", len(snap.ShoppingTrips))
	}
}

func TestControllerGenerateFailureReturnsToIdle(t *testing.T) {
	gen := &mockTextGenerator{errs: []error{errors.New("backend down")}}
	c := NewController(NewPlanner(gen))

	err := c.GeneratePlan(context.Background(), schedule.DefaultAppState(), nil)
	if !apperr.Is(err, apperr.GenerationFailed) {
		t.Fatalf("error %v is not GenerationFailed", err)
	}

	snap := c.Snapshot()
	if snap.Stage != StageIdle {
		t.Errorf("stage = %q, want idle", snap.Stage)
	}
	if snap.Err == "" {
		t.Error("error message not surfaced")
	}
	if len(snap.WeekPlan) != 0 {
		t.Error("week plan present after failed generation")
	}
}

func TestControllerConfirmFailureKeepsPlan(t *testing.T) {
	gen := &mockTextGenerator{
		responses: []llm.ContentResponse{{Content: validPlanJSON()}, {}},
		errs:      []error{nil, errors.New("backend down")},
	}
	c := readyController(t, gen)

	if err := c.ConfirmPlan(context.Background()); err == nil {
		t.Fatal("expected confirmation failure")
	}

	snap := c.Snapshot()
	if snap.Stage != StagePlanReady {
		t.Errorf("stage = %q, want plan-ready", snap.Stage)
	}
	if len(snap.WeekPlan) != 7 {
		t.Error("week plan lost on shopping failure")
	}
	if snap.Err == "" {
		t.Error("error message not surfaced")
	}
}

func TestControllerConfirmWithoutPlan(t *testing.T) {
	c := NewController(NewPlanner(&mockTextGenerator{}))
	err := c.ConfirmPlan(context.Background())
	if !apperr.Is(err, apperr.ValidationFailed) {
		t.Fatalf("error %v is not ValidationFailed", err)
	}
}

func TestControllerSelectiveRegeneration(t *testing.T) {
	gen := &mockTextGenerator{responses: []llm.ContentResponse{
		{Content: validPlanJSON()},
		{Content: validPlanJSON()},
	}}
	c := readyController(t, gen)

	c.ToggleSlot(schedule.Wed, schedule.Dinner)
	if got := len(c.Snapshot().SelectedSlots); got != 1 {
		t.Fatalf("selected %d slots, want 1", got)
	}

	if err := c.RegeneratePlan(context.Background(), schedule.DefaultAppState(), nil); err != nil {
		t.Fatalf("RegeneratePlan: %v", err)
	}

	if !strings.Contains(gen.prompts[1], "СЛОТЫ ДЛЯ ЗАМЕНЫ") {
		t.Error("second request is not a selective regeneration")
	}
	snap := c.Snapshot()
	if snap.Stage != StagePlanReady {
		t.Errorf("stage = %q, want plan-ready", snap.Stage)
	}
	if len(snap.SelectedSlots) != 0 {
		t.Error("selection not cleared after successful regeneration")
	}
}

func TestControllerFullRegenerationWithoutSelection(t *testing.T) {
	gen := &mockTextGenerator{responses: []llm.ContentResponse{
		{Content: validPlanJSON()},
		{Content: validPlanJSON()},
	}}
	c := readyController(t, gen)

	if err := c.RegeneratePlan(context.Background(), schedule.DefaultAppState(), nil); err != nil {
		t.Fatalf("RegeneratePlan: %v", err)
	}
	if strings.Contains(gen.prompts[1], "СЛОТЫ ДЛЯ ЗАМЕНЫ") {
		t.Error("empty selection still produced a selective request")
	}
}

func TestControllerRegenerationFailureKeepsPlanAndSelection(t *testing.T) {
	gen := &mockTextGenerator{
		responses: []llm.ContentResponse{{Content: validPlanJSON()}, {}},
		errs:      []error{nil, errors.New("backend down")},
	}
	c := readyController(t, gen)
	c.ToggleSlot(schedule.Fri, schedule.Breakfast)

	if err := c.RegeneratePlan(context.Background(), schedule.DefaultAppState(), nil); err == nil {
		t.Fatal("expected regeneration failure")
	}

	snap := c.Snapshot()
	if snap.Stage != StagePlanReady {
		t.Errorf("stage = %q, want plan-ready", snap.Stage)
	}
	if len(snap.WeekPlan) != 7 {
		t.Error("current plan lost on regeneration failure")
	}
	if len(snap.SelectedSlots) != 1 {
		t.Error("selection lost on regeneration failure")
	}
}

func TestControllerToggleOutsidePlanReadyIsNoop(t *testing.T) {
	c := NewController(NewPlanner(&mockTextGenerator{}))
	c.ToggleSlot(schedule.Mon, schedule.Breakfast)
	if got := len(c.Snapshot().SelectedSlots); got != 0 {
		t.Errorf("idle toggle selected %d slots", got)
	}
}

func TestControllerResetToPlanStage(t *testing.T) {
	gen := &mockTextGenerator{responses: []llm.ContentResponse{
		{Content: validPlanJSON()},
		{Content: validShoppingJSON()},
	}}
	c := readyController(t, gen)
	if err := c.ConfirmPlan(context.Background()); err != nil {
		t.Fatalf("ConfirmPlan: %v", err)
	}

	c.ResetToPlanStage()

	snap := c.Snapshot()
	if snap.Stage != StagePlanReady {
		t.Errorf("stage = %q, want plan-ready", snap.Stage)
	}
	if len(snap.ShoppingTrips) != 0 {
		t.Error("shopping trips survived the return to plan stage")
	}
	if len(snap.WeekPlan) != 7 {
		t.Error("week plan lost on return to plan stage")
	}
}

// A completion that arrives after Reset must not resurrect the session.
func TestControllerStaleCompletionDiscarded(t *testing.T) {
	gen := &blockingGenerator{
		started: make(chan struct{}),
		release: make(chan struct{}),
		resp:    llm.ContentResponse{Content: validPlanJSON()},
	}
	c := NewController(NewPlanner(gen))

	done := make(chan error, 1)
	go func() {
		done <- c.GeneratePlan(context.Background(), schedule.DefaultAppState(), nil)
	}()

	<-gen.started
	c.Reset()
	close(gen.release)

	if err := <-done; err != nil {
		t.Fatalf("stale completion returned error: %v", err)
	}
	snap := c.Snapshot()
	if snap.Stage != StageIdle {
		t.Errorf("stage = %q, want idle", snap.Stage)
	}
	if len(snap.WeekPlan) != 0 {
		t.Error("stale result clobbered the reset session")
	}
}

func TestControllerStaleFailureDiscarded(t *testing.T) {
	gen := &blockingGenerator{
		started: make(chan struct{}),
		release: make(chan struct{}),
		err:     errors.New("backend down"),
	}
	c := NewController(NewPlanner(gen))

	done := make(chan error, 1)
	go func() {
		done <- c.GeneratePlan(context.Background(), schedule.DefaultAppState(), nil)
	}()

	<-gen.started
	c.Reset()
	close(gen.release)

	if err := <-done; err != nil {
		t.Fatalf("stale failure returned error: %v", err)
	}
	if got := c.Snapshot().Err; got != "" {
		t.Errorf("stale failure surfaced error %q", got)
	}
}
