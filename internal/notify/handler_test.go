package notify

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/tffedibot/fedibot/internal/store"
)

const wedding = `Ann has accepted Bo's "Something Special For Someone Special"! Congratulations!`

func weddingNotification() DisplayNotification {
	return DisplayNotification{
		TitleKey: "#TF_WeddingRing",
		BodyKey:  "#TF_WeddingRing_ClientMessageBody",
		Keys:     []string{"receiver_name", "gifter_name", "ring_name"},
		Values:   []string{"Ann", "Bo", "#TF_WeddingRing"},
	}
}

func nullLog() (*logrus.Entry, *test.Hook) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)

	return logrus.NewEntry(l), hook
}

func TestHandleNotification_publishesWithWarning(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rec := NewMockRecorder(ctrl)
	pub := NewMockPublisher(ctrl)

	filter, err := NewFilter(map[string][]string{"special": {"someone special"}})
	require.NoError(t, err)

	rec.EXPECT().
		RecordNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n store.Notification) (*store.Notification, error) {
			assert.Equal(t, int64(7), n.RunID)
			assert.Equal(t, "#TF_WeddingRing", n.Title)
			assert.Equal(t, wedding, n.Formatted)
			assert.Equal(t, "Bo", n.Substrings["gifter_name"])
			n.ID = 3

			return &n, nil
		})
	pub.EXPECT().Publish(gomock.Any(), wedding, "special").Return(nil)

	log, _ := nullLog()
	h := NewHandler(rec, filter, pub, log)

	got, err := h.HandleNotification(context.Background(), 7, weddingNotification())
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
}

func TestHandleNotification_publishErrorIsLogged(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rec := NewMockRecorder(ctrl)
	pub := NewMockPublisher(ctrl)

	rec.EXPECT().RecordNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n store.Notification) (*store.Notification, error) { return &n, nil })
	pub.EXPECT().Publish(gomock.Any(), wedding, "").Return(errors.New("instance down"))

	log, hook := nullLog()
	h := NewHandler(rec, nil, pub, log)

	_, err := h.HandleNotification(context.Background(), 1, weddingNotification())
	require.NoError(t, err)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "publishing status", hook.LastEntry().Message)
}

func TestHandleNotification_storeErrorSkipsPublish(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rec := NewMockRecorder(ctrl)
	pub := NewMockPublisher(ctrl)

	rec.EXPECT().RecordNotification(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk full"))

	h := NewHandler(rec, nil, pub, nil)

	_, err := h.HandleNotification(context.Background(), 1, weddingNotification())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storing notification")
}

func TestHandleGCMessage(t *testing.T) {
	t.Parallel()

	welcome := protowire.AppendTag(nil, 1, protowire.VarintType)
	welcome = protowire.AppendVarint(welcome, 3)

	tests := []struct {
		name       string
		msg        store.GCMessage
		wantAction Action
		wantErr    error
		publishes  bool
	}{
		{name: "non-protobuf is ignored", msg: store.GCMessage{MsgType: MsgClientDisplayNotification}, wantAction: Continue},
		{name: "welcome", msg: store.GCMessage{Protobuf: true, MsgType: MsgClientWelcome, Data: welcome}, wantAction: Continue},
		{name: "goodbye stops", msg: store.GCMessage{Protobuf: true, MsgType: MsgClientGoodbye}, wantAction: Stop},
		{name: "unknown type", msg: store.GCMessage{Protobuf: true, MsgType: 1}, wantAction: Continue},
		{
			name:       "display notification publishes",
			msg:        store.GCMessage{Protobuf: true, MsgType: MsgClientDisplayNotification, Data: encodeDisplayNotification(weddingNotification())},
			wantAction: Continue,
			publishes:  true,
		},
		{
			name:       "malformed notification",
			msg:        store.GCMessage{Protobuf: true, MsgType: MsgClientDisplayNotification, Data: []byte{0x0a, 0x05}},
			wantAction: Continue,
			wantErr:    ErrMalformedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			rec := NewMockRecorder(ctrl)
			pub := NewMockPublisher(ctrl)

			rec.EXPECT().RecordGCMessage(gomock.Any(), int64(5), tt.msg).Return(int64(1), nil)

			if tt.publishes {
				rec.EXPECT().RecordNotification(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, n store.Notification) (*store.Notification, error) { return &n, nil })
				pub.EXPECT().Publish(gomock.Any(), wedding, "").Return(nil)
			}

			log, _ := nullLog()

			action, err := NewHandler(rec, nil, pub, log).HandleGCMessage(context.Background(), 5, tt.msg)
			assert.Equal(t, tt.wantAction, action)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestHandleGCMessage_recordErrorIsReturned(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rec := NewMockRecorder(ctrl)
	rec.EXPECT().RecordGCMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("locked"))

	_, err := NewHandler(rec, nil, NewMockPublisher(ctrl), nil).
		HandleGCMessage(context.Background(), 1, store.GCMessage{Protobuf: true, MsgType: MsgClientGoodbye})
	require.EqualError(t, err, "locked")
}

func TestHandler_withStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	log, _ := nullLog()

	s, err := store.Open(ctx, filepath.Join(t.TempDir(), "data.db"), time.Second, store.WithLogger(log))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = s.Start(ctx)
	require.NoError(t, err)

	run, err := s.CreateRun(ctx)
	require.NoError(t, err)

	h := NewHandler(s, nil, LogPublisher{Log: log}, log)

	action, err := h.HandleGCMessage(ctx, run, store.GCMessage{
		Protobuf: true,
		MsgType:  MsgClientDisplayNotification,
		Data:     encodeDisplayNotification(weddingNotification()),
	})
	require.NoError(t, err)
	assert.Equal(t, Continue, action)

	got, err := s.Notifications(ctx, run)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, wedding, got[0].Formatted)
	assert.Equal(t, "Ann", got[0].Substrings["receiver_name"])
}
