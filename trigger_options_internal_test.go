package lifecycle

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_TriggerOptions(t *testing.T) {
	t.Parallel()

	t.Run("ok/defaultsToSysSignal", func(t *testing.T) {
		t.Parallel()
		// act
		c := newDefaultTriggerConfig()
		// assert
		assert.NotNil(t, c.sysch)
		assert.Empty(t, c.usrch)
	})

	t.Run("ok/withCustomSystemSignal", func(t *testing.T) {
		t.Parallel()
		// arrange
		ch := make(chan os.Signal, 1)
		c := &triggerConfig{}
		// act
		WithCustomSystemSignal(ch)(c)
		// assert
		assert.Equal(t, (<-chan os.Signal)(ch), c.sysch)
	})

	t.Run("ok/withUserChanSignal", func(t *testing.T) {
		t.Parallel()
		// arrange
		a := make(chan struct{})
		b := make(chan struct{})
		c := &triggerConfig{}
		// act
		WithUserChanSignal(a, b)(c)
		// assert
		assert.Len(t, c.usrch, 2)
	})
}
