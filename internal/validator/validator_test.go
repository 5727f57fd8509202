package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/sleeptracker-server/internal/model"
)

func validate(t *testing.T, payload string) (model.Step, model.StepAnswer, error) {
	t.Helper()
	return ValidateStep(json.RawMessage(payload))
}

func TestValidateStep_Success(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantStep   model.Step
		wantAnswer model.StepAnswer
	}{
		{
			name:       "habit change single option",
			payload:    `{"sleepHabitChange":["I would go to sleep easily"]}`,
			wantStep:   model.StepSleepHabitChange,
			wantAnswer: model.HabitChanges{"I would go to sleep easily"},
		},
		{
			name:       "habit change all options",
			payload:    `{"sleepHabitChange":["I would go to sleep easily","I would sleep through the night","I'd wake up in time, refreshed"]}`,
			wantStep:   model.StepSleepHabitChange,
			wantAnswer: model.HabitChanges{"I would go to sleep easily", "I would sleep through the night", "I'd wake up in time, refreshed"},
		},
		{
			name:       "struggle duration",
			payload:    `{"sleepStruggleDurationFrom":"MORE_THAN_TWO_WEEKS"}`,
			wantStep:   model.StepSleepStruggleDurationFrom,
			wantAnswer: model.StruggleDuration("MORE_THAN_TWO_WEEKS"),
		},
		{
			name:       "time to go for sleep",
			payload:    `{"timeToGoForSleep":{"hour":10,"period":"PM"}}`,
			wantStep:   model.StepTimeToGoForSleep,
			wantAnswer: model.ClockTime{Hour: 10, Period: model.MeridiemPM},
		},
		{
			name:       "period is case-insensitive and normalized",
			payload:    `{"timeToWakeUp":{"hour":7,"period":"am"}}`,
			wantStep:   model.StepTimeToWakeUp,
			wantAnswer: model.ClockTime{Hour: 7, Period: model.MeridiemAM},
		},
		{
			name:       "typical sleep hours",
			payload:    `{"typicalSleepHours":8}`,
			wantStep:   model.StepTypicalSleepHours,
			wantAnswer: model.SleepHours(8),
		},
		{
			name:       "hour bounds are inclusive",
			payload:    `{"typicalSleepHours":12}`,
			wantStep:   model.StepTypicalSleepHours,
			wantAnswer: model.SleepHours(12),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, answer, err := validate(t, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStep, step)
			assert.Equal(t, tt.wantAnswer, answer)
		})
	}
}

func TestValidateStep_Failure(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantField string
	}{
		{
			name:    "not an object",
			payload: `[1,2]`,
		},
		{
			name:    "zero fields",
			payload: `{}`,
		},
		{
			name:    "two fields",
			payload: `{"typicalSleepHours":8,"sleepStruggleDurationFrom":"LESS_THAN_WEEK"}`,
		},
		{
			name:      "unrecognized field",
			payload:   `{"favouriteColor":"blue"}`,
			wantField: "favouriteColor",
		},
		{
			name:      "habit change empty array",
			payload:   `{"sleepHabitChange":[]}`,
			wantField: "sleepHabitChange",
		},
		{
			name:      "habit change unknown option",
			payload:   `{"sleepHabitChange":["I would nap all day"]}`,
			wantField: "sleepHabitChange",
		},
		{
			name:      "habit change duplicate option",
			payload:   `{"sleepHabitChange":["I would go to sleep easily","I would go to sleep easily"]}`,
			wantField: "sleepHabitChange",
		},
		{
			name:      "habit change not an array",
			payload:   `{"sleepHabitChange":"I would go to sleep easily"}`,
			wantField: "sleepHabitChange",
		},
		{
			name:      "struggle duration outside enumeration",
			payload:   `{"sleepStruggleDurationFrom":"FOREVER"}`,
			wantField: "sleepStruggleDurationFrom",
		},
		{
			name:      "struggle duration label instead of key",
			payload:   `{"sleepStruggleDurationFrom":"Less than a week"}`,
			wantField: "sleepStruggleDurationFrom",
		},
		{
			name:      "clock hour zero",
			payload:   `{"timeToGoForSleep":{"hour":0,"period":"PM"}}`,
			wantField: "timeToGoForSleep.hour",
		},
		{
			name:      "clock hour thirteen",
			payload:   `{"timeToGoForSleep":{"hour":13,"period":"PM"}}`,
			wantField: "timeToGoForSleep.hour",
		},
		{
			name:      "clock hour fractional",
			payload:   `{"timeToGoForSleep":{"hour":7.5,"period":"PM"}}`,
			wantField: "timeToGoForSleep.hour",
		},
		{
			name:      "clock hour missing",
			payload:   `{"timeToGoForSleep":{"period":"PM"}}`,
			wantField: "timeToGoForSleep.hour",
		},
		{
			name:      "clock period missing",
			payload:   `{"timeToWakeUp":{"hour":7}}`,
			wantField: "timeToWakeUp.period",
		},
		{
			name:      "clock period invalid",
			payload:   `{"timeToWakeUp":{"hour":7,"period":"XM"}}`,
			wantField: "timeToWakeUp.period",
		},
		{
			name:      "clock unknown field",
			payload:   `{"timeToWakeUp":{"hour":7,"period":"AM","minute":30}}`,
			wantField: "timeToWakeUp",
		},
		{
			name:      "sleep hours zero",
			payload:   `{"typicalSleepHours":0}`,
			wantField: "typicalSleepHours",
		},
		{
			name:      "sleep hours above range",
			payload:   `{"typicalSleepHours":13}`,
			wantField: "typicalSleepHours",
		},
		{
			name:      "sleep hours fractional",
			payload:   `{"typicalSleepHours":7.5}`,
			wantField: "typicalSleepHours",
		},
		{
			name:      "sleep hours as string",
			payload:   `{"typicalSleepHours":"8"}`,
			wantField: "typicalSleepHours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := validate(t, tt.payload)
			require.Error(t, err)

			var vErr *Error
			require.ErrorAs(t, err, &vErr)
			assert.NotEmpty(t, vErr.Message)
			assert.NotEmpty(t, vErr.Raw)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, vErr.Field)
			}
		})
	}
}
