package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/framecore/internal/application/input"
	"github.com/younwookim/framecore/internal/domain/avatar"
	"github.com/younwookim/framecore/internal/domain/entity"
)

func TestIntentFor(t *testing.T) {
	id := entity.EntityID(7)

	tests := []struct {
		action input.Action
		want   Intent
	}{
		{input.Jump, JumpIntent{EntityID: id}},
		{input.Attack, AttackIntent{EntityID: id}},
		{input.Duck, DuckIntent{EntityID: id, Down: true}},
		{input.StandUp, DuckIntent{EntityID: id}},
		{input.MoveLeft, MoveIntent{EntityID: id, Dir: -1}},
		{input.MoveRight, MoveIntent{EntityID: id, Dir: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			got, ok := IntentFor(id, tt.action)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, a := range []input.Action{input.Pause, input.Confirm, input.ActionNone} {
		_, ok := IntentFor(id, a)
		assert.False(t, ok, a.String())
	}
}

func TestApplyIntent(t *testing.T) {
	a := avatar.New(entity.NewBody(0, 0, 8, 8), avatar.DefaultTuning())

	assert.Equal(t, avatar.Standing, ApplyIntent(a, MoveIntent{Dir: -1}))
	assert.Less(t, a.VX, 0.0)

	assert.Equal(t, avatar.Ducking, ApplyIntent(a, DuckIntent{Down: true}))
	assert.Equal(t, avatar.Standing, ApplyIntent(a, DuckIntent{Down: false}))
	assert.Equal(t, avatar.Airborne, ApplyIntent(a, JumpIntent{}))

	ApplyIntent(a, AttackIntent{})
	assert.Equal(t, 1, a.Attacks())

	assert.Equal(t, avatar.Airborne, ApplyIntent(a, nil))
}
