package kafka

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled is always valid", Config{}, false},
		{"enabled with brokers", Config{Enabled: true, Brokers: []string{"k:9092"}}, false},
		{"enabled without brokers", Config{Enabled: true}, true},
		{"bad start offset", Config{Enabled: true, Brokers: []string{"k:9092"}, StartOffset: 5}, true},
		{"last offset", Config{Enabled: true, Brokers: []string{"k:9092"}, StartOffset: LastOffset}, false},
		{"min above max", Config{Enabled: true, Brokers: []string{"k:9092"}, MinBytes: 10, MaxBytes: 5}, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{}.withDefaults()
	assert.Equal(t, DefaultTopic, cfg.Topic)
	assert.Equal(t, DefaultMinBytes, cfg.MinBytes)
	assert.Equal(t, int(DefaultMaxBytes), cfg.MaxBytes)
	assert.Equal(t, DefaultMaxWait, cfg.MaxWait)
	assert.Equal(t, int64(FirstOffset), cfg.StartOffset)
	assert.Equal(t, DefaultFetchBackoff, cfg.FetchBackoff)

	custom := Config{Topic: "t", MaxWait: time.Second}.withDefaults()
	assert.Equal(t, "t", custom.Topic)
	assert.Equal(t, time.Second, custom.MaxWait)
}

func TestNewSpanFeed_Enabled(t *testing.T) {
	t.Parallel()

	f, err := NewSpanFeed(Config{
		Enabled: true,
		Brokers: []string{"127.0.0.1:1"},
		GroupID: "g",
		SASL:    SASLConfig{Enabled: true, Mechanism: "PLAIN", Username: "u", Password: "p"},
		TLS:     TLSConfig{Enabled: true, InsecureSkipVerify: true},
	}, &recordingReceiver{}, nil)
	require.NoError(t, err)

	assert.True(t, f.Enabled())
	assert.IsType(t, &kafka.Reader{}, f.reader)
	assert.Equal(t, "g", f.reader.(*kafka.Reader).Config().GroupID)
	assert.Equal(t, DefaultTopic, f.reader.(*kafka.Reader).Config().Topic)

	f.GracefulShutdown()
}

func TestNewSpanFeed_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewSpanFeed(Config{Enabled: true}, &recordingReceiver{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewSpanFeed(Config{
		Enabled: true,
		Brokers: []string{"k:9092"},
		TLS:     TLSConfig{Enabled: true, CACertPath: "/nonexistent/ca.crt"},
	}, &recordingReceiver{}, nil)
	assert.ErrorContains(t, err, "failed to create TLS config")

	_, err = NewSpanFeed(Config{
		Enabled: true,
		Brokers: []string{"k:9092"},
		SASL:    SASLConfig{Enabled: true, Mechanism: "GSSAPI"},
	}, &recordingReceiver{}, nil)
	assert.ErrorContains(t, err, "failed to create SASL mechanism")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCreateTLSConfig(t *testing.T) {
	t.Parallel()

	t.Run("insecure skip verify", func(t *testing.T) {
		t.Parallel()
		cfg, err := createTLSConfig(TLSConfig{InsecureSkipVerify: true})
		require.NoError(t, err)
		assert.True(t, cfg.InsecureSkipVerify)
		assert.Nil(t, cfg.RootCAs)
	})

	t.Run("missing CA cert file", func(t *testing.T) {
		t.Parallel()
		_, err := createTLSConfig(TLSConfig{CACertPath: "/nonexistent/ca.crt"})
		assert.Error(t, err)
	})

	t.Run("CA file without certificates", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "ca.crt")
		require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0o600))
		_, err := createTLSConfig(TLSConfig{CACertPath: path})
		assert.ErrorContains(t, err, "failed to parse CA cert")
	})

	t.Run("missing client cert file", func(t *testing.T) {
		t.Parallel()
		_, err := createTLSConfig(TLSConfig{ClientCertPath: "/nonexistent/client.crt", ClientKeyPath: "/nonexistent/client.key"})
		assert.Error(t, err)
	})
}

func TestCreateSASLMechanism(t *testing.T) {
	t.Parallel()

	for _, mechanism := range []string{"PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512"} {
		m, err := createSASLMechanism(SASLConfig{Mechanism: mechanism, Username: "u", Password: "p"})
		require.NoError(t, err, mechanism)
		assert.Equal(t, mechanism, m.Name())
	}

	_, err := createSASLMechanism(SASLConfig{Mechanism: "GSSAPI"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestTranslateError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		msg  string
		want error
	}{
		{"dial tcp 1.2.3.4:9092: connect: connection refused", ErrConnectionFailed},
		{"read: connection reset by peer", ErrConnectionLost},
		{"[8] Broker Not Available", ErrBrokerNotAvailable},
		{"SASL handshake failed", ErrAuthenticationFailed},
		{"[29] Topic Authorization Failed", ErrAuthorizationFailed},
		{"[3] Unknown Topic Or Partition", ErrTopicNotFound},
		{"[15] Group Coordinator Not Available", ErrGroupCoordinator},
		{"[27] Rebalance In Progress", ErrRebalanceInProgress},
		{"[1] Offset Out Of Range", ErrOffsetOutOfRange},
		{"[7] Request Timed Out", ErrRequestTimedOut},
		{"dial tcp: lookup kafka: no such host", ErrNetworkError},
	}

	for _, tc := range cases {
		assert.ErrorIs(t, TranslateError(errors.New(tc.msg)), tc.want, tc.msg)
	}

	assert.NoError(t, TranslateError(nil))
	unknown := errors.New("something else")
	assert.Same(t, unknown, TranslateError(unknown))
}

func TestIsPermanentError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsPermanentError(ErrAuthenticationFailed))
	assert.True(t, IsPermanentError(ErrTopicNotFound))
	assert.True(t, IsPermanentError(ErrInvalidConfig))
	assert.False(t, IsPermanentError(ErrConnectionFailed))
	assert.False(t, IsPermanentError(ErrRebalanceInProgress))
	assert.False(t, IsPermanentError(errors.New("other")))
}
