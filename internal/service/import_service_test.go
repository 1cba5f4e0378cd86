package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seebrasse345/mp-statement-writer/internal/models"
	appErrors "github.com/Seebrasse345/mp-statement-writer/pkg/errors"
)

type importRepoStub struct {
	created []*models.ApprovedStatement
	err     error
}

func (r *importRepoStub) Create(ctx context.Context, statement *models.ApprovedStatement) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, statement)
	return nil
}

func TestImportCSVLooseHeaderMatching(t *testing.T) {
	repo := &importRepoStub{}
	svc := NewImportService(repo, nil)

	csvData := "Statement Text,Subject,Tone,Tags\n" +
		"\"Funding secured for the bypass\",Funding,Optimistic/Positive,roads\n" +
		"\"New school places announced\",Education,,\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)

	require.Len(t, repo.created, 2)
	assert.Equal(t, "Funding secured for the bypass", repo.created[0].PublishedText)
	assert.Equal(t, "Funding", repo.created[0].Topic)
	assert.Equal(t, "roads", repo.created[0].Tags)
	assert.Equal(t, "Imported", repo.created[0].Source)
	assert.Equal(t, "Education", repo.created[1].Topic)
}

func TestImportCSVSkipsEmptyTextRows(t *testing.T) {
	repo := &importRepoStub{}
	svc := NewImportService(repo, nil)

	csvData := "text,topic\n" +
		"kept,Funding\n" +
		"   ,Funding\n" +
		",Education\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)
}

func TestImportCSVRequiresTextColumn(t *testing.T) {
	svc := NewImportService(&importRepoStub{}, nil)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("topic,tone\nFunding,Neutral/Balanced\n"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestImportCSVEmptyStream(t *testing.T) {
	svc := NewImportService(&importRepoStub{}, nil)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader(""))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestImportCSVPreservesExplicitSource(t *testing.T) {
	repo := &importRepoStub{}
	svc := NewImportService(repo, nil)

	csvData := "text,source\nold newsletter piece,Constituency newsletter\n"
	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, "Constituency newsletter", repo.created[0].Source)
}
