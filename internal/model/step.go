package model

// Step identifies one question screen in the onboarding sequence.
type Step string

const (
	StepSleepHabitChange          Step = "sleepHabitChange"
	StepSleepStruggleDurationFrom Step = "sleepStruggleDurationFrom"
	StepTimeToGoForSleep          Step = "timeToGoForSleep"
	StepTimeToWakeUp              Step = "timeToWakeUp"
	StepTypicalSleepHours         Step = "typicalSleepHours"
)

// ScreenDone is the terminal next-screen sentinel returned after the last step.
const ScreenDone = "Done"

// Steps lists the onboarding steps in presentation order. The slice order is
// the single source of truth for step sequencing.
var Steps = []Step{
	StepSleepHabitChange,
	StepSleepStruggleDurationFrom,
	StepTimeToGoForSleep,
	StepTimeToWakeUp,
	StepTypicalSleepHours,
}

var stepIndex = func() map[Step]int {
	m := make(map[Step]int, len(Steps))
	for i, s := range Steps {
		m[s] = i
	}
	return m
}()

// Index returns the position of the step in the sequence.
func (s Step) Index() (int, bool) {
	i, ok := stepIndex[s]
	return i, ok
}

// Valid reports whether the step belongs to the onboarding sequence.
func (s Step) Valid() bool {
	_, ok := stepIndex[s]
	return ok
}

// Next returns the identifier of the screen following this step,
// or ScreenDone if this is the last step of the sequence.
func (s Step) Next() string {
	i, ok := stepIndex[s]
	if !ok || i+1 >= len(Steps) {
		return ScreenDone
	}
	return string(Steps[i+1])
}

// SleepHabitChangeOptions enumerates the selectable habit-change statements.
var SleepHabitChangeOptions = []string{
	"I would go to sleep easily",
	"I would sleep through the night",
	"I'd wake up in time, refreshed",
}

// SleepStruggleDurations enumerates the struggle-duration choice keys.
var SleepStruggleDurations = []string{
	"LESS_THAN_WEEK",
	"ONE_TO_TWO_WEEKS",
	"MORE_THAN_TWO_WEEKS",
}

// Clock hour and nightly sleep hour bounds shared by the validator.
const (
	MinClockHour  = 1
	MaxClockHour  = 12
	MinSleepHours = 1
	MaxSleepHours = 12
)
