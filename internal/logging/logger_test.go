package logging

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("debug"))
	assert.Equal(t, logrus.ErrorLevel, GetLevel("ERROR"))
	assert.Equal(t, logrus.FatalLevel, GetLevel("fatal"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("Info"))
	assert.Equal(t, logrus.TraceLevel, GetLevel("trace"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warn"))
	assert.Equal(t, logrus.TraceLevel, GetLevel(""))
	assert.Equal(t, logrus.TraceLevel, GetLevel("whatever"))
}

func TestSetup_LogFile(t *testing.T) {
	defer func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
	}()

	logFile := filepath.Join(t.TempDir(), "weeklyfit")
	Setup(LoggerSetupParams{
		LogFileName: logFile,
		LogLevel:    "info",
	})
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	logrus.Debugln("hidden line")
	logrus.Infoln("visible line")

	content, err := os.ReadFile(logFile + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(content), "visible line")
	assert.NotContains(t, string(content), "hidden line")
}

func TestSetup_ConsoleOnly(t *testing.T) {
	defer func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
	}()

	console := &bytes.Buffer{}
	Setup(LoggerSetupParams{
		LogToConsole: true,
		Console:      console,
		LogLevel:     "debug",
	})
	logrus.Debugln("console line")
	assert.Contains(t, console.String(), "console line")

	Setup(LoggerSetupParams{LogLevel: "debug"})
	assert.Equal(t, io.Discard, logrus.StandardLogger().Out)
}

func TestSetup_DefaultsToStderr(t *testing.T) {
	defer func() {
		logrus.SetLevel(logrus.InfoLevel)
	}()

	Setup(LoggerSetupParams{LogToConsole: true, LogLevel: "info"})
	assert.Equal(t, os.Stderr, logrus.StandardLogger().Out)
	assert.NotEqual(t, os.Stdout, logrus.StandardLogger().Out)
}

func TestSetup_LogFileAndConsole(t *testing.T) {
	defer func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
	}()

	console := &bytes.Buffer{}
	logFile := filepath.Join(t.TempDir(), "weeklyfit.log")
	Setup(LoggerSetupParams{
		LogFileName:  logFile,
		LogToConsole: true,
		Console:      console,
		LogLevel:     "info",
	})
	logrus.Infoln("both places")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "both places")
	assert.Contains(t, console.String(), "both places")
}

func TestSentryHook_Fire(t *testing.T) {
	var captured []*sentry.Event
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			captured = append(captured, event)
			return nil
		},
	})
	require.NoError(t, err)
	hub := sentry.NewHub(client, sentry.NewScope())

	hook := NewSentryHookWithHub([]logrus.Level{logrus.ErrorLevel}, hub)
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())

	logger := logrus.New()
	logger.SetOutput(&discard{})
	logger.AddHook(hook)

	logger.Warnln("not forwarded")
	logger.Errorln("roster broken")
	logger.WithError(errors.New("eotikurac")).Errorln("with error")

	require.Len(t, captured, 2)
	assert.Equal(t, "roster broken", captured[0].Message)
	assert.Equal(t, sentry.LevelError, captured[0].Level)
	require.NotEmpty(t, captured[1].Exception)
	assert.Equal(t, "eotikurac", captured[1].Exception[0].Value)
}

func TestSentryHook_NilHub(t *testing.T) {
	hook := NewSentryHookWithHub(logrus.AllLevels, nil)
	assert.Error(t, hook.Fire(logrus.NewEntry(logrus.New())))
}

type discard struct{}

func (d *discard) Write(p []byte) (int, error) { return len(p), nil }
