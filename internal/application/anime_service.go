package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/anistreamdev/anistream/internal/domain/entity"
	repo "github.com/anistreamdev/anistream/internal/domain/repository"
	"github.com/anistreamdev/anistream/pkg/helpers"
)

// AnimeService owns the catalog: public listing/detail plus the admin
// mutations, each of which records an audit entry on success.
type AnimeService struct {
	Animes    repo.AnimeRepository
	Audit     *AuditRecorder
	ES        *elasticsearch.Client
	ESIndex   string
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewAnimeService(animes repo.AnimeRepository, audit *AuditRecorder, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *AnimeService {
	return &AnimeService{
		Animes:    animes,
		Audit:     audit,
		ES:        es,
		ESIndex:   esIndex,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		Logger:    logger,
	}
}

type CreateAnimeInput struct {
	Title         string
	Description   string
	Genre         string
	Episodes      int
	Status        entity.AnimeStatus
	CoverImageURL string
	TrailerURL    string
	ReleaseYear   int
	IsPremiumOnly bool
}

// UpdateAnimeInput is a partial field set: nil means "leave unchanged".
type UpdateAnimeInput struct {
	Title         *string
	Description   *string
	Genre         *string
	Episodes      *int
	Status        *entity.AnimeStatus
	CoverImageURL *string
	TrailerURL    *string
	ReleaseYear   *int
	Rating        *int
	IsPremiumOnly *bool
}

func (in UpdateAnimeInput) apply(a *entity.Anime) map[string]any {
	changes := map[string]any{}
	if in.Title != nil {
		a.Title = *in.Title
		changes["title"] = *in.Title
	}
	if in.Description != nil {
		a.Description = *in.Description
		changes["description"] = *in.Description
	}
	if in.Genre != nil {
		a.Genre = *in.Genre
		changes["genre"] = *in.Genre
	}
	if in.Episodes != nil {
		a.Episodes = *in.Episodes
		changes["episodes"] = *in.Episodes
	}
	if in.Status != nil {
		a.Status = *in.Status
		changes["status"] = string(*in.Status)
	}
	if in.CoverImageURL != nil {
		a.CoverImageURL = *in.CoverImageURL
		changes["cover_image_url"] = *in.CoverImageURL
	}
	if in.TrailerURL != nil {
		a.TrailerURL = *in.TrailerURL
		changes["trailer_url"] = *in.TrailerURL
	}
	if in.ReleaseYear != nil {
		a.ReleaseYear = *in.ReleaseYear
		changes["release_year"] = *in.ReleaseYear
	}
	if in.Rating != nil {
		a.Rating = *in.Rating
		changes["rating"] = *in.Rating
	}
	if in.IsPremiumOnly != nil {
		a.IsPremiumOnly = *in.IsPremiumOnly
		changes["is_premium_only"] = *in.IsPremiumOnly
	}
	return changes
}

func (s *AnimeService) List(ctx context.Context, f repo.AnimeFilter) ([]entity.Anime, error) {
	return s.Animes.List(ctx, f)
}

// Get returns the entry and bumps its view counter. The counter update is
// best-effort and never fails the read.
func (s *AnimeService) Get(ctx context.Context, id int64) (*entity.Anime, error) {
	a, err := s.Animes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAnimeNotFound
		}
		return nil, err
	}
	if err := s.Animes.IncrementViews(ctx, id); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("anime_id", id).Debug("view counter update failed")
	}
	return a, nil
}

func (s *AnimeService) Upload(ctx context.Context, adminID int64, in CreateAnimeInput) (*entity.Anime, error) {
	status := in.Status
	if status == "" {
		status = entity.StatusUpcoming
	}
	a := &entity.Anime{
		Title:         in.Title,
		Description:   in.Description,
		Genre:         in.Genre,
		Episodes:      in.Episodes,
		Status:        status,
		CoverImageURL: in.CoverImageURL,
		TrailerURL:    in.TrailerURL,
		ReleaseYear:   in.ReleaseYear,
		IsPremiumOnly: in.IsPremiumOnly,
		UploadedBy:    adminID,
	}
	if err := s.Animes.Create(ctx, a); err != nil {
		return nil, err
	}

	details, _ := json.Marshal(map[string]any{"title": a.Title})
	if err := s.Audit.Record(ctx, &entity.AdminLog{
		AdminID:    adminID,
		Action:     entity.ActionUploadAnime,
		TargetID:   &a.ID,
		TargetType: entity.TargetAnime,
		Details:    string(details),
	}, nil); err != nil {
		return nil, err
	}

	s.indexAnime(ctx, a)
	return a, nil
}

func (s *AnimeService) Update(ctx context.Context, adminID, id int64, in UpdateAnimeInput) error {
	a, err := s.Animes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAnimeNotFound
		}
		return err
	}

	changes := in.apply(a)
	if err := s.Animes.Update(ctx, a); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAnimeNotFound
		}
		return err
	}

	details, _ := json.Marshal(changes)
	if err := s.Audit.Record(ctx, &entity.AdminLog{
		AdminID:    adminID,
		Action:     entity.ActionUpdateAnime,
		TargetID:   &id,
		TargetType: entity.TargetAnime,
		Details:    string(details),
	}, nil); err != nil {
		return err
	}

	s.indexAnime(ctx, a)
	return nil
}

func (s *AnimeService) Delete(ctx context.Context, adminID, id int64) error {
	a, err := s.Animes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAnimeNotFound
		}
		return err
	}

	if err := s.Animes.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAnimeNotFound
		}
		return err
	}

	details, _ := json.Marshal(map[string]any{"title": a.Title})
	if err := s.Audit.Record(ctx, &entity.AdminLog{
		AdminID:    adminID,
		Action:     entity.ActionDeleteAnime,
		TargetID:   &id,
		TargetType: entity.TargetAnime,
		Details:    string(details),
	}, nil); err != nil {
		return err
	}

	s.deleteAnimeDoc(ctx, id)
	return nil
}

// UploadCover stores the cover image in GCS and points the entry at the
// public URL. Logged as an UPDATE_ANIME with the new URL in the details.
func (s *AnimeService) UploadCover(ctx context.Context, adminID, id int64, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("cover storage not configured")
	}
	a, err := s.Animes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrAnimeNotFound
		}
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("covers", strconv.FormatInt(id, 10), uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	a.CoverImageURL = url
	if err := s.Animes.Update(ctx, a); err != nil {
		return "", err
	}

	details, _ := json.Marshal(map[string]any{"cover_image_url": url})
	if err := s.Audit.Record(ctx, &entity.AdminLog{
		AdminID:    adminID,
		Action:     entity.ActionUpdateAnime,
		TargetID:   &id,
		TargetType: entity.TargetAnime,
		Details:    string(details),
	}, nil); err != nil {
		return "", err
	}

	s.indexAnime(ctx, a)
	return url, nil
}

// Search queries the Elasticsearch index across title, description and
// genre. Returns empty results when the index is not configured.
func (s *AnimeService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "genre"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *AnimeService) indexAnime(ctx context.Context, a *entity.Anime) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":              a.ID,
		"title":           a.Title,
		"description":     a.Description,
		"genre":           a.Genre,
		"status":          string(a.Status),
		"release_year":    a.ReleaseYear,
		"is_premium_only": a.IsPremiumOnly,
		"created_at":      a.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: strconv.FormatInt(a.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("anime_id", a.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("anime_id", a.ID).Warn("es index response error")
	}
}

func (s *AnimeService) deleteAnimeDoc(ctx context.Context, id int64) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("anime_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
