package service

import (
	"context"
	"errors"
	"fmt"

	"bbs-manager/internal/models"
	"bbs-manager/internal/repository"
	"bbs-manager/internal/weight"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no record with the given id exists.
	ErrNotFound = errors.New("record not found")
	// ErrForbidden is returned when the record belongs to another user.
	ErrForbidden = errors.New("record not owned by caller")
)

// RecordInput carries the BBS entry form fields. Any client-supplied total
// weight is deliberately absent: the weight is always recomputed here.
type RecordInput struct {
	ProjectName string
	ElementType string
	Diameter    float64
	Length      float64
	Quantity    int
}

// BBSService manages bar bending schedule records scoped to their owner.
type BBSService interface {
	Create(ctx context.Context, owner UserContext, in RecordInput) (*models.BBSRecord, error)
	List(ctx context.Context, owner UserContext) ([]models.BBSRecord, error)
	Get(ctx context.Context, owner UserContext, id uint) (*models.BBSRecord, error)
	Update(ctx context.Context, owner UserContext, id uint, in RecordInput) (*models.BBSRecord, error)
	Delete(ctx context.Context, owner UserContext, id uint) error
}

type bbsService struct {
	records repository.RecordRepository
}

func NewBBSService(records repository.RecordRepository) BBSService {
	return &bbsService{records: records}
}

func validateRecordInput(in RecordInput) error {
	if in.Diameter <= 0 {
		return fmt.Errorf("%w: diameter must be positive", ErrInvalidInput)
	}
	if in.Length <= 0 {
		return fmt.Errorf("%w: length must be positive", ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	return nil
}

func (s *bbsService) Create(ctx context.Context, owner UserContext, in RecordInput) (*models.BBSRecord, error) {
	if err := validateRecordInput(in); err != nil {
		return nil, err
	}

	rec := &models.BBSRecord{
		ProjectName: in.ProjectName,
		ElementType: in.ElementType,
		Diameter:    in.Diameter,
		Length:      in.Length,
		Quantity:    in.Quantity,
		TotalWeight: weight.Total(in.Diameter, in.Length, in.Quantity),
		OwnerID:     owner.UserID,
	}

	if err := s.records.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	return rec, nil
}

func (s *bbsService) List(ctx context.Context, owner UserContext) ([]models.BBSRecord, error) {
	recs, err := s.records.ListByOwner(ctx, owner.UserID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return recs, nil
}

// Get fetches a single record, enforcing ownership.
func (s *bbsService) Get(ctx context.Context, owner UserContext, id uint) (*models.BBSRecord, error) {
	return s.fetchOwned(ctx, owner, id)
}

// Update replaces the record's fields and recomputes the total weight. The
// record is untouched on validation or ownership failure.
func (s *bbsService) Update(ctx context.Context, owner UserContext, id uint, in RecordInput) (*models.BBSRecord, error) {
	rec, err := s.fetchOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := validateRecordInput(in); err != nil {
		return nil, err
	}

	rec.ProjectName = in.ProjectName
	rec.ElementType = in.ElementType
	rec.Diameter = in.Diameter
	rec.Length = in.Length
	rec.Quantity = in.Quantity
	rec.TotalWeight = weight.Total(in.Diameter, in.Length, in.Quantity)

	if err := s.records.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}
	return rec, nil
}

func (s *bbsService) Delete(ctx context.Context, owner UserContext, id uint) error {
	rec, err := s.fetchOwned(ctx, owner, id)
	if err != nil {
		return err
	}
	if err := s.records.Delete(ctx, rec); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

func (s *bbsService) fetchOwned(ctx context.Context, owner UserContext, id uint) (*models.BBSRecord, error) {
	rec, err := s.records.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find record: %w", err)
	}
	if rec.OwnerID != owner.UserID {
		return nil, ErrForbidden
	}
	return rec, nil
}

// TotalOf sums the weights of records for display, rounded to two decimals.
func TotalOf(records []models.BBSRecord) float64 {
	var sum float64
	for _, r := range records {
		sum += r.TotalWeight
	}
	return weight.Round2(sum)
}
