//go:build integration

package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/tffedibot/fedibot/internal/notify"
	"github.com/tffedibot/fedibot/internal/store"
)

const busyTimeout = 100 * time.Millisecond

// StorePath returns the path of a store file in a fresh temp directory.
func StorePath(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "data.db")
}

// OpenStore opens the store file at path and closes it when the test completes.
// Every call opens an independent handle, as a separate process would.
func OpenStore(t *testing.T, path string, opts ...store.Option) *store.Store {
	t.Helper()

	l, _ := test.NewNullLogger()
	base := []store.Option{store.WithLogger(logrus.NewEntry(l))}

	s, err := store.Open(context.Background(), path, busyTimeout, append(base, opts...)...)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

// EncodeWelcome builds a CMsgClientWelcome body carrying version.
func EncodeWelcome(version uint32) []byte {
	b := protowire.AppendTag(nil, 1, protowire.VarintType)

	return protowire.AppendVarint(b, uint64(version))
}

// EncodeDisplayNotification builds a CMsgGCClientDisplayNotification body.
func EncodeDisplayNotification(n notify.DisplayNotification) []byte {
	var b []byte

	b = appendString(b, 1, n.TitleKey)
	b = appendString(b, 2, n.BodyKey)

	for _, k := range n.Keys {
		b = appendString(b, 3, k)
	}

	for _, v := range n.Values {
		b = appendString(b, 4, v)
	}

	return b
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendString(b, v)
}
