package collector

import (
	"fmt"
	"testing"
	"time"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/parse"
	"github.com/netfleet/netinv/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession is an in-memory CommandRunner: command -> canned output (or
// error), with a record of every command it was asked to run.
type fakeSession struct {
	outputs map[string]string
	errs    map[string]error
	ran     []string
}

func (f *fakeSession) Run(command string, _ time.Duration) (string, error) {
	f.ran = append(f.ran, command)
	if err, ok := f.errs[command]; ok {
		return "", err
	}
	return f.outputs[command], nil
}

func (f *fakeSession) Close() error { return nil }

// fakeOpener hands out one fakeSession per device, keyed by host, and
// records every pinned no-pager command.
type fakeOpener struct {
	sessions map[string]*fakeSession
	openErr  map[string]error
}

func (f *fakeOpener) Open(device model.Device, _ model.Credentials, noPagerCmd string) (CommandRunner, error) {
	if err, ok := f.openErr[device.Host]; ok {
		return nil, err
	}
	sess, ok := f.sessions[device.Host]
	if !ok {
		return nil, fmt.Errorf("no fake session configured for %s", device.Host)
	}
	if noPagerCmd != "" {
		sess.ran = append(sess.ran, noPagerCmd)
	}
	return sess, nil
}

func (f *fakeOpener) CommandDeadline() time.Duration { return time.Second }

func TestEngineRunCollectsPrimaryAcrossDevices(t *testing.T) {
	reg := platform.New()
	opener := &fakeOpener{sessions: map[string]*fakeSession{
		"10.0.0.1": {outputs: map[string]string{"show version": "r1 uptime is 1 day\nVersion 15.2(4)M1\n"}},
		"10.0.0.2": {outputs: map[string]string{"show version": "Hostname: r2\nModel: qfx\nJunos: 20.4R1\n"}},
	}}
	engine := &Engine{Registry: reg, Conn: opener, Parser: parse.New(reg), WorkerPoolSize: 2}

	devices := []model.Device{
		{Host: "10.0.0.1", Platform: "cisco_ios"},
		{Host: "10.0.0.2", Platform: "juniper_junos"},
	}
	results := engine.Run(devices, model.Credentials{Username: "u", Password: "p"}, platform.IntentDevices, SecondaryConfig{})
	require.Len(t, results, 2)
	for _, r := range results {
		require.NoError(t, r.Err)
		require.Len(t, r.PrimaryRows, 1)
	}
}

func TestEngineSecondaryFailureDoesNotFailPrimary(t *testing.T) {
	reg := platform.New()
	sess := &fakeSession{
		outputs: map[string]string{"show version": "r1 uptime is 1 day\nVersion 15.2(4)M1\n"},
		errs:    map[string]error{"show etherchannel summary": fmt.Errorf("boom")},
	}
	opener := &fakeOpener{sessions: map[string]*fakeSession{"10.0.0.1": sess}}
	var warnings int
	engine := &Engine{
		Registry: reg, Conn: opener, Parser: parse.New(reg), WorkerPoolSize: 1,
		OnWarning: func(model.Device, platform.Intent, error) { warnings++ },
	}

	devices := []model.Device{{Host: "10.0.0.1", Platform: "cisco_ios"}}
	sc := SecondaryConfig{Enabled: map[platform.Intent]bool{platform.IntentLAG: true}}
	results := engine.Run(devices, model.Credentials{Username: "u", Password: "p"}, platform.IntentDevices, sc)

	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.Len(t, results[0].PrimaryRows, 1)
	assert.Equal(t, 1, warnings)
}

func TestEngineSecondaryNotAttemptedWhenCommandUndefined(t *testing.T) {
	reg := platform.New()
	sess := &fakeSession{outputs: map[string]string{"show version": "r1 uptime is 1 day\nVersion 15.2(4)M1\n"}}
	opener := &fakeOpener{sessions: map[string]*fakeSession{"10.0.0.1": sess}}
	engine := &Engine{Registry: reg, Conn: opener, Parser: parse.New(reg), WorkerPoolSize: 1}

	devices := []model.Device{{Host: "10.0.0.1", Platform: "cisco_iosxr"}}
	sc := SecondaryConfig{Enabled: map[platform.Intent]bool{platform.IntentSwitchport: true}}
	results := engine.Run(devices, model.Credentials{}, platform.IntentDevices, sc)

	require.Len(t, results, 1)
	assert.Empty(t, results[0].SecondaryRows)
}

func TestEngineUnknownPlatformIsDeviceLevelFailure(t *testing.T) {
	reg := platform.New()
	opener := &fakeOpener{sessions: map[string]*fakeSession{}}
	engine := &Engine{Registry: reg, Conn: opener, Parser: parse.New(reg), WorkerPoolSize: 1}

	devices := []model.Device{{Host: "10.0.0.9", Platform: "not_a_real_platform"}}
	results := engine.Run(devices, model.Credentials{}, platform.IntentDevices, SecondaryConfig{})

	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}
