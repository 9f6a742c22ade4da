package main

import (
	"os"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	mgcd "github.com/jonathanmweiss/go-mgcd"
	"github.com/jonathanmweiss/go-mgcd/field"
	"github.com/jonathanmweiss/go-mgcd/mpoly"
)

func TestConfigureLogging(t *testing.T) {
	a := assert.New(t)

	configureLogging(true)
	a.Equal(os.Stderr, log.StandardLogger().Out)
	a.Equal(log.DebugLevel, log.GetLevel())

	configureLogging(false)
	a.Equal(log.InfoLevel, log.GetLevel())
}

func TestRunTimeouts(t *testing.T) {
	a := assert.New(t)

	f := field.MustPrimeField(524287)
	prm := benchParams{vars: 2, degree: 2, terms: 3, problems: 2, seed: 1, timeout: 10 * time.Millisecond}
	problems := randomProblems[uint64](f, prm, field.NewRandomFromUint64(prm.seed))

	release := make(chan struct{})
	slow := func(cfg *mgcd.Config, x, y *mpoly.Poly[uint64]) (*mpoly.Poly[uint64], error) {
		<-release
		return mgcd.ZippelGCD(cfg, x, y)
	}

	res := run("slow", slow, problems, prm)
	a.Equal(2, res.timeouts)
	a.Zero(res.solved)
	// the second problem started while the first one was still running.
	a.True(res.skewed)

	close(release)
	a.Eventually(func() bool { return abandoned.Load() == 0 }, time.Second, time.Millisecond)

	prm.timeout = 30 * time.Second
	res = run("zippel", mgcd.ZippelGCD[uint64], problems, prm)
	a.False(res.skewed)
	a.Equal(2, res.solved)
}
