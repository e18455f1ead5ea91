package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "rl:ip", NewRedisCounterStore(nil, "rl").buildKey("ip"))
	assert.Equal(t, "rl:ip", NewRedisCounterStore(nil, "rl:").buildKey("ip"))
	assert.Equal(t, "ip", NewRedisCounterStore(nil, "").buildKey("ip"))
}

func TestLuaScriptEmbedded(t *testing.T) {
	assert.Contains(t, atomicIncrLua, "INCR")
	assert.Contains(t, atomicIncrLua, "PEXPIRE")
}
