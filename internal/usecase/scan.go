// Package usecase orchestrates the scan pipeline: validate the upload,
// persist it briefly, extract features, score them for the requested
// mode, narrate the scores, and shape everything into the response
// contract. Each request is independent and stateless.
package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/example/lifescan/internal/insight"
	"github.com/example/lifescan/internal/scan"
	"github.com/example/lifescan/internal/upload"
	"github.com/example/lifescan/internal/vision"
)

// ScanUseCase holds the pipeline collaborators. The extractor and
// narrator are chosen once at startup (mock or live); cache may be nil.
type ScanUseCase struct {
	store     *upload.Store
	cache     Cache
	cacheTTL  time.Duration
	extractor vision.Extractor
	narrator  insight.Narrator
	logger    *zap.Logger
}

func NewScanUseCase(store *upload.Store, cache Cache, cacheTTL time.Duration, extractor vision.Extractor, narrator insight.Narrator, logger *zap.Logger) *ScanUseCase {
	return &ScanUseCase{
		store:     store,
		cache:     cache,
		cacheTTL:  cacheTTL,
		extractor: extractor,
		narrator:  narrator,
		logger:    logger,
	}
}

// Scan runs the full pipeline for one uploaded image. The temp file is
// removed on every exit path, success or failure.
func (uc *ScanUseCase) Scan(ctx context.Context, mode scan.Mode, filename string, data []byte) (scan.Response, error) {
	if err := upload.Validate(filename, data); err != nil {
		return scan.Response{}, err
	}

	key := cacheKey(mode, data)
	if cached, ok := uc.cacheLookup(ctx, key); ok {
		return cached, nil
	}

	path, err := uc.store.Save(filename, data)
	if err != nil {
		return scan.Response{}, err
	}
	defer uc.store.Remove(path)

	features, err := uc.extractor.Extract(ctx, data)
	if err != nil {
		return scan.Response{}, err
	}

	scores, err := scan.Score(mode, features)
	if err != nil {
		return scan.Response{}, err
	}

	narration, err := uc.narrator.Narrate(ctx, scores)
	if err != nil {
		return scan.Response{}, err
	}

	resp := scan.Shape(mode, features, scores, narration)
	uc.cacheStore(ctx, key, resp)
	return resp, nil
}

// ExtractFeatures runs only the validation and extraction stages. Used
// by the vision debug endpoint.
func (uc *ScanUseCase) ExtractFeatures(ctx context.Context, filename string, data []byte) (scan.FeatureSet, error) {
	if err := upload.Validate(filename, data); err != nil {
		return nil, err
	}
	return uc.extractor.Extract(ctx, data)
}

func cacheKey(mode scan.Mode, data []byte) string {
	h := sha256.New()
	h.Write([]byte(mode))
	h.Write([]byte{0})
	h.Write(data)
	return "scan:" + hex.EncodeToString(h.Sum(nil))
}

func (uc *ScanUseCase) cacheLookup(ctx context.Context, key string) (scan.Response, bool) {
	if uc.cache == nil {
		return scan.Response{}, false
	}
	raw, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn("cache get failed", zap.Error(err))
		}
		return scan.Response{}, false
	}
	var resp scan.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		uc.logger.Warn("cache entry corrupt", zap.Error(err))
		return scan.Response{}, false
	}
	return resp, true
}

func (uc *ScanUseCase) cacheStore(ctx context.Context, key string, resp scan.Response) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, key, raw, uc.cacheTTL); err != nil {
		uc.logger.Warn("cache set failed", zap.Error(err))
	}
}
