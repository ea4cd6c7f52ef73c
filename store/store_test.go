package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/postpilot/pipeline"
)

func testResult() *pipeline.Result {
	return &pipeline.Result{
		FinalContent: "We ship safety. #Safety",
		Hashtags:     []string{"Safety"},
		Status:       pipeline.StatusCompleted,
	}
}

func TestSaveAndGet(t *testing.T) {
	s := New()
	rec := s.Save(testResult(), nil, 42)

	require.NotEmpty(t, rec.ID)
	assert.Equal(t, StatusPendingApproval, rec.Status)
	assert.EqualValues(t, 42, rec.ChatID)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := s.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "We ship safety. #Safety", got.Result.FinalContent)
}

func TestGetNotFound(t *testing.T) {
	s := New()
	_, err := s.Get("missing")

	var notFound *ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.ID)
}

func TestApprovalLifecycle(t *testing.T) {
	s := New()
	rec := s.Save(testResult(), nil, 42)

	approved, err := s.Transition(rec.ID, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	posted, err := s.MarkPosted(rec.ID, "urn:li:share:9")
	require.NoError(t, err)
	assert.Equal(t, StatusPosted, posted.Status)
	assert.Equal(t, "urn:li:share:9", posted.PostID)
}

func TestRejectionIsTerminal(t *testing.T) {
	s := New()
	rec := s.Save(testResult(), nil, 42)

	_, err := s.Transition(rec.ID, StatusRejected)
	require.NoError(t, err)

	_, err = s.Transition(rec.ID, StatusApproved)
	var invalid *ErrInvalidTransition
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, StatusRejected, invalid.From)
}

func TestCannotPostUnapprovedContent(t *testing.T) {
	s := New()
	rec := s.Save(testResult(), nil, 42)

	_, err := s.MarkPosted(rec.ID, "urn:li:share:9")
	var invalid *ErrInvalidTransition
	assert.ErrorAs(t, err, &invalid)
}

func TestPostFailureCanBeRetried(t *testing.T) {
	s := New()
	rec := s.Save(testResult(), nil, 42)

	_, err := s.Transition(rec.ID, StatusApproved)
	require.NoError(t, err)

	failed, err := s.MarkPostFailed(rec.ID, errors.New("rate limited"))
	require.NoError(t, err)
	assert.Equal(t, StatusPostFailed, failed.Status)
	assert.Equal(t, "rate limited", failed.Error)

	posted, err := s.MarkPosted(rec.ID, "urn:li:share:10")
	require.NoError(t, err)
	assert.Equal(t, StatusPosted, posted.Status)
}

func TestListFiltersByStatus(t *testing.T) {
	s := New()
	a := s.Save(testResult(), nil, 1)
	b := s.Save(testResult(), nil, 2)
	_, err := s.Transition(b.ID, StatusApproved)
	require.NoError(t, err)

	pending := s.List(StatusPendingApproval)
	require.Len(t, pending, 1)
	assert.Equal(t, a.ID, pending[0].ID)

	all := s.List("")
	assert.Len(t, all, 2)
}

func TestDelete(t *testing.T) {
	s := New()
	rec := s.Save(testResult(), nil, 1)

	require.NoError(t, s.Delete(rec.ID))
	_, err := s.Get(rec.ID)
	assert.Error(t, err)

	assert.Error(t, s.Delete(rec.ID))
}

func TestGetReturnsCopy(t *testing.T) {
	s := New()
	rec := s.Save(testResult(), nil, 1)

	got, err := s.Get(rec.ID)
	require.NoError(t, err)
	got.Status = StatusPosted

	again, err := s.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPendingApproval, again.Status)
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := s.Save(testResult(), nil, 1)
			_, err := s.Get(rec.ID)
			assert.NoError(t, err)
			s.List("")
		}()
	}
	wg.Wait()
	assert.Len(t, s.List(""), 50)
}
