package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	apperrors "go-menu-gallery/internal/errors"
	"go-menu-gallery/internal/observer"
	"go-menu-gallery/internal/repository"
	"go-menu-gallery/internal/storage"
	"go-menu-gallery/internal/strategy"
	"go-menu-gallery/internal/worker"
	"go-menu-gallery/pkg/carousel"
	"go-menu-gallery/pkg/menuimage"
	"go-menu-gallery/pkg/models"
	"go-menu-gallery/pkg/validation"
)

var circleIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// MenuImageService manages the menu image sets of circles
type MenuImageService interface {
	// Reads
	GetImages(ctx context.Context, circleID string) (models.ImageSet, error)
	OpenCarousel(ctx context.Context, circleID string) (*carousel.Carousel, error)

	// Writes; each one validates the resulting set before storing it
	SaveImages(ctx context.Context, circleID string, images models.ImageSet) (models.ImageSet, error)
	AddImage(ctx context.Context, circleID, imageURL string, metadata map[string]interface{}) (models.ImageSet, error)
	RemoveImage(ctx context.Context, circleID, imageID string) (models.ImageSet, error)
	MoveImage(ctx context.Context, circleID, imageID string, index int) (models.ImageSet, error)
	RepairImages(ctx context.Context, circleID string) (models.ImageSet, error)
	ClearImages(ctx context.Context, circleID string) error

	// Dry-run checks
	ValidateFile(file models.FileDescriptor, maxSizeMB float64) models.ValidationResult
	ValidateSet(images models.ImageSet) models.ValidationResult
	ProbeImage(ctx context.Context, imageURL string) (*models.ProbeResponse, error)
	CheckImages(ctx context.Context, circleID string) (*models.ImageCheckResponse, error)
}

// Settings holds the tunables the service reads from configuration
type Settings struct {
	MaxUploadSizeMB float64
	ProbeTimeout    time.Duration
}

type menuImageService struct {
	repo     repository.MenuImageRepository
	writes   strategy.WriteStrategy
	urls     *validation.URLValidator
	sets     *validation.SetValidator
	prober   storage.ImageProber
	events   observer.Subject
	settings Settings
	now      func() time.Time

	// one writer per circle at a time
	locks *keyedLock
}

// NewMenuImageService creates a new menu image service
func NewMenuImageService(
	repo repository.MenuImageRepository,
	writes strategy.WriteStrategy,
	urls *validation.URLValidator,
	prober storage.ImageProber,
	events observer.Subject,
	settings Settings,
) MenuImageService {
	if urls == nil {
		urls = validation.NewURLValidator()
	}
	if writes == nil {
		writes = strategy.NewStrictWriteStrategy()
	}
	if settings.MaxUploadSizeMB <= 0 {
		settings.MaxUploadSizeMB = validation.DefaultMaxFileSizeMB
	}
	if settings.ProbeTimeout <= 0 {
		settings.ProbeTimeout = 15 * time.Second
	}
	return &menuImageService{
		repo:     repo,
		writes:   writes,
		urls:     urls,
		sets:     validation.NewSetValidator(urls),
		prober:   prober,
		events:   events,
		settings: settings,
		now:      func() time.Time { return time.Now().UTC() },
		locks:    newKeyedLock(),
	}
}

// GetImages returns the circle's set; a circle with no stored set has no images
func (s *menuImageService) GetImages(ctx context.Context, circleID string) (models.ImageSet, error) {
	if err := validateCircleID(circleID); err != nil {
		return nil, err
	}
	return s.load(ctx, circleID)
}

// OpenCarousel starts a viewing session over the circle's images in display order
func (s *menuImageService) OpenCarousel(ctx context.Context, circleID string) (*carousel.Carousel, error) {
	images, err := s.GetImages(ctx, circleID)
	if err != nil {
		return nil, err
	}
	return carousel.New(menuimage.Reorder(images)), nil
}

// SaveImages replaces the whole set after passing it through the write strategy
func (s *menuImageService) SaveImages(ctx context.Context, circleID string, images models.ImageSet) (models.ImageSet, error) {
	if err := validateCircleID(circleID); err != nil {
		return nil, err
	}
	unlock := s.lock(circleID)
	defer unlock()

	start := time.Now()
	prepared := s.writes.Prepare(images)
	return s.commit(ctx, circleID, prepared, observer.SetSaved, start, map[string]interface{}{
		"write_strategy": s.writes.GetStrategyName(),
	})
}

// AddImage appends an image after the current last one
func (s *menuImageService) AddImage(ctx context.Context, circleID, imageURL string, metadata map[string]interface{}) (models.ImageSet, error) {
	if err := validateCircleID(circleID); err != nil {
		return nil, err
	}
	unlock := s.lock(circleID)
	defer unlock()

	start := time.Now()
	current, err := s.load(ctx, circleID)
	if err != nil {
		return nil, err
	}

	uploadedAt := s.now()
	next := menuimage.Reorder(current)
	next = append(next, models.ImageRef{
		ID:         menuimage.GenerateID(),
		URL:        imageURL,
		Order:      len(next),
		UploadedAt: &uploadedAt,
		Metadata:   metadata,
	})
	return s.commit(ctx, circleID, next, observer.ImageAdded, start, map[string]interface{}{
		"image_url": imageURL,
	})
}

// RemoveImage deletes one image and closes the gap it leaves
func (s *menuImageService) RemoveImage(ctx context.Context, circleID, imageID string) (models.ImageSet, error) {
	if err := validateCircleID(circleID); err != nil {
		return nil, err
	}
	unlock := s.lock(circleID)
	defer unlock()

	start := time.Now()
	current, err := s.load(ctx, circleID)
	if err != nil {
		return nil, err
	}

	idx := menuimage.IndexOf(current, imageID)
	if idx < 0 {
		return nil, apperrors.NewNotFoundError("image not found", repository.ErrImageNotFound).WithDetails(imageID)
	}

	remaining := make(models.ImageSet, 0, len(current)-1)
	remaining = append(remaining, current[:idx]...)
	remaining = append(remaining, current[idx+1:]...)
	return s.commit(ctx, circleID, menuimage.Reorder(remaining), observer.ImageRemoved, start, map[string]interface{}{
		"image_id": imageID,
	})
}

// MoveImage moves one image to index, clamped to the set's bounds
func (s *menuImageService) MoveImage(ctx context.Context, circleID, imageID string, index int) (models.ImageSet, error) {
	if err := validateCircleID(circleID); err != nil {
		return nil, err
	}
	unlock := s.lock(circleID)
	defer unlock()

	start := time.Now()
	current, err := s.load(ctx, circleID)
	if err != nil {
		return nil, err
	}

	ordered := menuimage.Reorder(current)
	from := menuimage.IndexOf(ordered, imageID)
	if from < 0 {
		return nil, apperrors.NewNotFoundError("image not found", repository.ErrImageNotFound).WithDetails(imageID)
	}
	return s.commit(ctx, circleID, menuimage.Move(ordered, from, index), observer.ImageMoved, start, map[string]interface{}{
		"image_id": imageID,
		"from":     from,
		"to":       index,
	})
}

// RepairImages renumbers the stored set so its order values are contiguous again
func (s *menuImageService) RepairImages(ctx context.Context, circleID string) (models.ImageSet, error) {
	if err := validateCircleID(circleID); err != nil {
		return nil, err
	}
	unlock := s.lock(circleID)
	defer unlock()

	start := time.Now()
	current, err := s.load(ctx, circleID)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, circleID, menuimage.Reorder(current), observer.SetRepaired, start, nil)
}

// ClearImages drops the circle's whole set; clearing an empty circle succeeds
func (s *menuImageService) ClearImages(ctx context.Context, circleID string) error {
	if err := validateCircleID(circleID); err != nil {
		return err
	}
	unlock := s.lock(circleID)
	defer unlock()

	start := time.Now()
	if err := s.repo.Delete(ctx, circleID); err != nil {
		return mapRepositoryError(err)
	}
	s.publish(ctx, observer.MenuEvent{
		EventType: observer.SetCleared,
		CircleID:  circleID,
		Duration:  time.Since(start),
		Success:   true,
	})
	return nil
}

func (s *menuImageService) ValidateFile(file models.FileDescriptor, maxSizeMB float64) models.ValidationResult {
	if maxSizeMB <= 0 {
		maxSizeMB = s.settings.MaxUploadSizeMB
	}
	return validation.ValidateFile(file, maxSizeMB)
}

func (s *menuImageService) ValidateSet(images models.ImageSet) models.ValidationResult {
	return s.sets.ValidateSet(images)
}

// ProbeImage inspects a stored-image URL and checks it as if it were an upload
func (s *menuImageService) ProbeImage(ctx context.Context, imageURL string) (*models.ProbeResponse, error) {
	if err := s.urls.ValidateImageURL(imageURL); err != nil {
		return nil, err
	}
	if s.prober == nil {
		return nil, apperrors.NewUnavailableError("image probing is not configured", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.settings.ProbeTimeout)
	defer cancel()

	start := time.Now()
	desc, err := s.prober.Probe(ctx, imageURL)
	if err != nil {
		var probeErr *apperrors.AppError
		if errors.Is(err, context.DeadlineExceeded) {
			probeErr = apperrors.NewTimeoutError("image probe timeout", err)
		} else {
			probeErr = apperrors.NewNetworkError("failed to probe image", err)
		}
		s.publish(ctx, observer.MenuEvent{
			EventType:    observer.ProbeFailed,
			ImageURL:     imageURL,
			Duration:     time.Since(start),
			ErrorMessage: err.Error(),
		})
		return nil, probeErr
	}

	result := s.ValidateFile(desc, 0)
	if result.Valid && desc.Size < 0 {
		result = models.Invalid("file size unknown")
	}

	s.publish(ctx, observer.MenuEvent{
		EventType: observer.ImageProbed,
		ImageURL:  imageURL,
		Duration:  time.Since(start),
		Success:   result.Valid,
		Metadata: map[string]interface{}{
			"content_type": desc.ContentType,
			"size":         desc.Size,
		},
	})

	return &models.ProbeResponse{
		URL:           imageURL,
		ContentType:   desc.ContentType,
		Size:          desc.Size,
		SizeFormatted: menuimage.FormatByteSize(desc.Size),
		Validation:    result,
	}, nil
}

// CheckImages probes every stored image of the circle concurrently
func (s *menuImageService) CheckImages(ctx context.Context, circleID string) (*models.ImageCheckResponse, error) {
	images, err := s.GetImages(ctx, circleID)
	if err != nil {
		return nil, err
	}
	images = menuimage.Reorder(images)

	checks := make([]models.ImageCheck, len(images))
	if len(images) > 0 {
		pool := worker.NewPool(len(images))
		pool.Start()
		for i, img := range images {
			i, img := i, img
			pool.Submit(func() {
				check := models.ImageCheck{ImageID: img.ID, URL: img.URL}
				resp, err := s.ProbeImage(ctx, img.URL)
				if err != nil {
					check.Error = errorMessage(err)
				} else {
					check.Probe = resp
				}
				checks[i] = check
			})
		}
		pool.Wait()
		pool.Close()
	}

	healthy := true
	for _, check := range checks {
		if check.Probe == nil || !check.Probe.Validation.Valid {
			healthy = false
			break
		}
	}
	return &models.ImageCheckResponse{CircleID: circleID, Healthy: healthy, Checks: checks}, nil
}

// commit validates next and stores it whole, or stores nothing
func (s *menuImageService) commit(
	ctx context.Context,
	circleID string,
	next models.ImageSet,
	eventType observer.EventType,
	start time.Time,
	metadata map[string]interface{},
) (models.ImageSet, error) {
	if result := s.sets.ValidateSet(next); !result.Valid {
		s.publish(ctx, observer.MenuEvent{
			EventType:    observer.SetRejected,
			CircleID:     circleID,
			ImageCount:   len(next),
			Duration:     time.Since(start),
			ErrorMessage: result.Error,
			Metadata:     metadata,
		})
		return nil, result.Err()
	}

	assignMissingIDs(next)
	doc := &models.MenuImageDocument{
		CircleID:  circleID,
		Images:    next,
		UpdatedAt: s.now(),
	}
	if err := s.repo.Put(ctx, doc); err != nil {
		return nil, mapRepositoryError(err)
	}

	s.publish(ctx, observer.MenuEvent{
		EventType:  eventType,
		CircleID:   circleID,
		ImageCount: len(next),
		Duration:   time.Since(start),
		Success:    true,
		Metadata:   metadata,
	})
	return next, nil
}

func (s *menuImageService) load(ctx context.Context, circleID string) (models.ImageSet, error) {
	doc, err := s.repo.Get(ctx, circleID)
	if err != nil {
		if errors.Is(err, repository.ErrSetNotFound) {
			return models.ImageSet{}, nil
		}
		return nil, mapRepositoryError(err)
	}
	if doc.Images == nil {
		return models.ImageSet{}, nil
	}
	return doc.Images, nil
}

func (s *menuImageService) lock(circleID string) func() {
	return s.locks.Lock(circleID)
}

func (s *menuImageService) publish(ctx context.Context, event observer.MenuEvent) {
	if s.events == nil {
		return
	}
	// observers run after the request returns
	s.events.NotifyObservers(context.WithoutCancel(ctx), event)
}

func assignMissingIDs(images models.ImageSet) {
	for i := range images {
		if images[i].ID == "" {
			images[i].ID = menuimage.GenerateID()
		}
	}
}

func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func validateCircleID(circleID string) error {
	if !circleIDPattern.MatchString(circleID) {
		return apperrors.NewValidationError("invalid circle id", nil).WithDetails(circleID)
	}
	return nil
}

func mapRepositoryError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError("menu image store timeout", err)
	case errors.Is(err, repository.ErrRepositoryUnavailable):
		return apperrors.NewUnavailableError("menu image store unavailable", err)
	default:
		return apperrors.NewInternalError("menu image store failure", err)
	}
}
