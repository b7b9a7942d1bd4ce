package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cocreate/internal/common"
	"github.com/dmitrijs2005/cocreate/internal/dbx"
	"github.com/dmitrijs2005/cocreate/internal/server/exports"
	"github.com/dmitrijs2005/cocreate/internal/server/models"
	"github.com/dmitrijs2005/cocreate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/cocreate/internal/server/textgen"
)

// Exporter stores rendered exports and hands back a download link.
type Exporter interface {
	Put(ctx context.Context, userID int64, f exports.Format, body []byte) (*exports.Upload, error)
}

// ExportFile is a rendered export ready to be sent to the client.
type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
}

type GenerationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	provider    textgen.Provider
	prompts     textgen.Prompts
	exporter    Exporter
	now         func() time.Time
}

// NewGenerationService wires the service. exporter may be nil, in which case
// ExportToStorage reports common.ErrExportUnavailable.
func NewGenerationService(db *sql.DB, m repomanager.RepositoryManager, provider textgen.Provider,
	prompts textgen.Prompts, exporter Exporter) *GenerationService {
	return &GenerationService{
		db:          db,
		repomanager: m,
		provider:    provider,
		prompts:     prompts,
		exporter:    exporter,
		now:         time.Now,
	}
}

func (s *GenerationService) request(kind models.GenerationType, topic string, user *models.User) (textgen.Request, error) {
	profile := textgen.Profile{
		ContentType:       user.ContentType,
		TargetAudience:    user.TargetAudience,
		AdditionalContext: user.AdditionalContext,
	}
	switch kind {
	case models.GenerationVideoScript:
		return s.prompts.VideoScript(topic, profile), nil
	case models.GenerationContentIdea:
		return s.prompts.ContentIdea(topic, profile), nil
	case models.GenerationNewsletter:
		return s.prompts.Newsletter(topic, profile), nil
	case models.GenerationThread:
		return s.prompts.Thread(topic, profile), nil
	default:
		return textgen.Request{}, common.ErrBadRequest
	}
}

// Generate asks the provider for a new artifact of the given kind and records
// it in user's ledger. The provider is called before anything is written, so
// a provider failure leaves storage untouched. The insert and the ledger
// append share one transaction.
func (s *GenerationService) Generate(ctx context.Context, user *models.User, kind models.GenerationType, topic string) (*models.Generation, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, common.ErrEmptyPrompt
	}

	req, err := s.request(kind, topic, user)
	if err != nil {
		return nil, err
	}

	text, err := s.provider.Generate(ctx, req)
	if err != nil {
		if common.KindOf(err) != common.KindUpstream {
			err = fmt.Errorf("%w: %w", common.ErrUpstreamGeneration, err)
		}
		return nil, err
	}

	var id int64
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		id, err = s.repomanager.Generations(tx).Create(ctx, kind, text)
		if err != nil {
			return err
		}
		return s.repomanager.Users(tx).AppendGeneration(ctx, user.ID, id)
	})
	if err != nil {
		return nil, err
	}

	return &models.Generation{ID: id, Type: kind, Content: text, CreatedAt: s.now()}, nil
}

// ChangeTone rewrites text in the requested tone. The result is not stored.
func (s *GenerationService) ChangeTone(ctx context.Context, text, tone string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", common.ErrEmptyText
	}
	if strings.TrimSpace(tone) == "" {
		tone = textgen.DefaultTone
	}

	out, err := s.provider.Generate(ctx, s.prompts.ChangeTone(text, tone))
	if err != nil {
		if common.KindOf(err) != common.KindUpstream {
			err = fmt.Errorf("%w: %w", common.ErrUpstreamGeneration, err)
		}
		return "", err
	}
	return out, nil
}

// History returns user's generations in ledger order.
func (s *GenerationService) History(ctx context.Context, user *models.User) ([]*models.Generation, error) {
	return s.listInOrder(ctx, user.Generations)
}

// Saved returns user's favorites in the order they were saved.
func (s *GenerationService) Saved(ctx context.Context, user *models.User) ([]*models.Generation, error) {
	return s.listInOrder(ctx, user.FavoriteGenerations)
}

func (s *GenerationService) listInOrder(ctx context.Context, ids []int64) ([]*models.Generation, error) {
	if len(ids) == 0 {
		return []*models.Generation{}, nil
	}
	gens, err := s.repomanager.Generations(s.db).ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return orderByLedger(ids, gens), nil
}

// orderByLedger arranges gens to follow ids. Ids without a row are skipped.
func orderByLedger(ids []int64, gens []*models.Generation) []*models.Generation {
	byID := make(map[int64]*models.Generation, len(gens))
	for _, g := range gens {
		byID[g.ID] = g
	}
	out := make([]*models.Generation, 0, len(ids))
	for _, id := range ids {
		if g, ok := byID[id]; ok {
			out = append(out, g)
		}
	}
	return out
}

// Get returns one generation owned by user. Generations owned by someone
// else are reported as not found.
func (s *GenerationService) Get(ctx context.Context, user *models.User, id int64) (*models.Generation, error) {
	if id <= 0 {
		return nil, common.ErrInvalidGenerationID
	}
	if !user.Owns(id) {
		return nil, common.ErrNotFound
	}
	return s.repomanager.Generations(s.db).GetByID(ctx, id)
}

// Save adds an owned generation to user's favorites.
func (s *GenerationService) Save(ctx context.Context, user *models.User, id int64) error {
	if id <= 0 {
		return common.ErrInvalidGenerationID
	}
	return s.repomanager.Users(s.db).AddFavorite(ctx, user.ID, id)
}

// Unsave removes a generation from user's favorites.
func (s *GenerationService) Unsave(ctx context.Context, user *models.User, id int64) error {
	if id <= 0 {
		return common.ErrInvalidGenerationID
	}
	return s.repomanager.Users(s.db).RemoveFavorite(ctx, user.ID, id)
}

// Export renders user's history (or favorites when saved is set).
func (s *GenerationService) Export(ctx context.Context, user *models.User, format exports.Format, saved bool) (*ExportFile, error) {
	var (
		gens []*models.Generation
		err  error
	)
	if saved {
		gens, err = s.Saved(ctx, user)
	} else {
		gens, err = s.History(ctx, user)
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	body, err := exports.Render(format, &exports.Document{
		Username:    user.UserName,
		Saved:       saved,
		ExportedAt:  now,
		Generations: gens,
	})
	if err != nil {
		return nil, err
	}

	scope := "generations"
	if saved {
		scope = "saved"
	}
	return &ExportFile{
		Name:        fmt.Sprintf("cocreate-%s-%s-%s.%s", user.UserName, scope, now.UTC().Format("20060102"), format.Extension()),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

// ExportToStorage renders an export and uploads it, returning a presigned link.
func (s *GenerationService) ExportToStorage(ctx context.Context, user *models.User, format exports.Format, saved bool) (*exports.Upload, error) {
	if s.exporter == nil {
		return nil, common.ErrExportUnavailable
	}

	file, err := s.Export(ctx, user, format, saved)
	if err != nil {
		return nil, err
	}

	up, err := s.exporter.Put(ctx, user.ID, format, file.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrExportUnavailable, err)
	}
	return up, nil
}
