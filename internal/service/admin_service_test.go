package service_test

import (
	"context"
	"testing"
	"time"

	"tg-assist-be/internal/entity"
	"tg-assist-be/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/datatypes"
)

func TestAdminGetStoredFiles(t *testing.T) {
	files := newFakeFiles()
	files.records["AB12CD"] = &entity.FileRecord{
		Pin:         "AB12CD",
		Filename:    "doc.txt",
		OwnerChatId: 42,
		CreatedAt:   time.Now(),
	}

	admin := service.NewAdminService(nopLogger{}, files, nil)
	res, err := admin.GetStoredFiles(context.Background(), 50, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	require.Len(t, res.Files, 1)
	assert.Equal(t, "AB12CD", res.Files[0].Pin)
	assert.Equal(t, "doc.txt", res.Files[0].Filename)
	assert.Equal(t, int64(42), res.Files[0].OwnerChatId)
}

func TestAdminGetStoredFilesWithoutDatabase(t *testing.T) {
	admin := service.NewAdminService(nopLogger{}, nil, nil)
	res, err := admin.GetStoredFiles(context.Background(), 50, 0)

	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.Empty(t, res.Files)
}

func TestAdminGetAuditTrail(t *testing.T) {
	logs := &fakeSystemLogs{}
	logs.entries = append(logs.entries, &entity.SystemLog{
		Level:     "INFO",
		Module:    "bot",
		Message:   "WORKFLOW_COMPLETED",
		Details:   datatypes.JSON(`{"command":"/sendmsg"}`),
		CreatedAt: time.Now(),
	})

	admin := service.NewAdminService(nopLogger{}, nil, logs)
	res, err := admin.GetAuditTrail(context.Background(), 50, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "WORKFLOW_COMPLETED", res.Entries[0].Message)
	assert.Equal(t, "/sendmsg", res.Entries[0].Details["command"])
}

func TestAdminGetAuditTrailWithoutDatabase(t *testing.T) {
	admin := service.NewAdminService(nopLogger{}, nil, nil)
	res, err := admin.GetAuditTrail(context.Background(), 50, 0)

	require.NoError(t, err)
	assert.Empty(t, res.Entries)
}
