package slack

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/aws-cost-chart/internal/shared/types"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlack struct {
	joinErr    error
	uploadErrs []error
	joined     []string
	uploads    []slack.UploadFileV2Parameters
}

func (f *fakeSlack) JoinConversationContext(_ context.Context, channelID string) (*slack.Channel, string, []string, error) {
	f.joined = append(f.joined, channelID)
	if f.joinErr != nil {
		return nil, "", nil, f.joinErr
	}
	return &slack.Channel{}, "", nil, nil
}

func (f *fakeSlack) UploadFileV2Context(_ context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error) {
	f.uploads = append(f.uploads, params)
	idx := len(f.uploads) - 1
	if idx < len(f.uploadErrs) && f.uploadErrs[idx] != nil {
		return nil, f.uploadErrs[idx]
	}
	return &slack.FileSummary{ID: "F1", Title: params.Title}, nil
}

func chartFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart_1.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.3 test"), 0o644))
	return path
}

func TestPostFile(t *testing.T) {
	fake := &fakeSlack{}
	n := newNotifier(fake, 0)
	path := chartFile(t)

	require.NoError(t, n.PostFile(context.Background(), "C01234567", path, "AWS daily cost"))

	assert.Equal(t, []string{"C01234567"}, fake.joined)
	require.Len(t, fake.uploads, 1)
	up := fake.uploads[0]
	assert.Equal(t, path, up.File)
	assert.Equal(t, "chart_1.pdf", up.Filename)
	assert.Equal(t, len("%PDF-1.3 test"), up.FileSize)
	assert.Equal(t, "AWS daily cost", up.Title)
	assert.Equal(t, "C01234567", up.Channel)
}

func TestPostFileJoinFailureSkipsUpload(t *testing.T) {
	fake := &fakeSlack{joinErr: errors.New("channel_not_found")}
	n := newNotifier(fake, 0)

	err := n.PostFile(context.Background(), "C01234567", chartFile(t), "t")
	require.ErrorIs(t, err, types.ErrChannelJoin)
	assert.Empty(t, fake.uploads)
}

func TestPostFileRetriesOnce(t *testing.T) {
	fake := &fakeSlack{uploadErrs: []error{errors.New("timeout")}}
	n := newNotifier(fake, 0)

	require.NoError(t, n.PostFile(context.Background(), "C01234567", chartFile(t), "t"))
	assert.Len(t, fake.uploads, 2)
}

func TestPostFileGivesUpAfterTwoAttempts(t *testing.T) {
	fake := &fakeSlack{uploadErrs: []error{errors.New("timeout"), errors.New("timeout")}}
	n := newNotifier(fake, 0)

	err := n.PostFile(context.Background(), "C01234567", chartFile(t), "t")
	require.ErrorIs(t, err, types.ErrUploadFailed)
	assert.Len(t, fake.uploads, 2)
}

func TestNewNotifierRequiresToken(t *testing.T) {
	_, err := NewNotifier("")
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}
