package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datasync-console/internal/db"
	"datasync-console/internal/domain"
)

func newChatRepo(t *testing.T) *ChatRepo {
	t.Helper()
	s := db.OpenTestStore(t)
	return NewChatRepo(s.Write, s.Read)
}

func TestChatRepo_ThreadLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newChatRepo(t)

	thread, err := repo.CreateThread(ctx, &domain.ChatThread{})
	require.NoError(t, err)
	require.NotEmpty(t, thread.ID)
	assert.Empty(t, thread.Title)

	_, err = repo.AppendMessage(ctx, &domain.StoredMessage{ThreadID: thread.ID, Role: domain.RoleUser, Content: "What tables do I have?"})
	require.NoError(t, err)
	_, err = repo.AppendMessage(ctx, &domain.StoredMessage{
		ThreadID: thread.ID,
		Role:     domain.RoleAssistant,
		Content:  "You have users.",
		ToolResults: []domain.ToolResult{
			{ToolName: "list_tables", Data: json.RawMessage(`["users"]`)},
		},
	})
	require.NoError(t, err)

	got, err := repo.GetThread(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, "What tables do I have?", got.Title)

	msgs, err := repo.ListMessages(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleUser, msgs[0].Role)
	assert.Equal(t, domain.RoleAssistant, msgs[1].Role)
	require.Len(t, msgs[1].ToolResults, 1)
	assert.Equal(t, "list_tables", msgs[1].ToolResults[0].ToolName)
	assert.JSONEq(t, `["users"]`, string(msgs[1].ToolResults[0].Data))

	require.NoError(t, repo.DeleteThread(ctx, thread.ID))

	_, err = repo.GetThread(ctx, thread.ID)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)

	msgs, err = repo.ListMessages(ctx, thread.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestChatRepo_AppendToMissingThread(t *testing.T) {
	t.Parallel()
	repo := newChatRepo(t)

	_, err := repo.AppendMessage(context.Background(), &domain.StoredMessage{ThreadID: "missing", Role: domain.RoleUser, Content: "hi"})
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestChatRepo_DeleteMissingThread(t *testing.T) {
	t.Parallel()
	repo := newChatRepo(t)

	err := repo.DeleteThread(context.Background(), "missing")
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestChatRepo_ListThreadsPaginates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newChatRepo(t)

	var ids []string
	for i := 0; i < 3; i++ {
		th, err := repo.CreateThread(ctx, &domain.ChatThread{Title: "t"})
		require.NoError(t, err)
		ids = append(ids, th.ID)
	}

	page, total, err := repo.ListThreads(ctx, domain.PageRequest{MaxResults: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)

	next := domain.NextPageToken(0, 2, total)
	rest, _, err := repo.ListThreads(ctx, domain.PageRequest{MaxResults: 2, PageToken: next})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, ids[0], rest[0].ID)
}
