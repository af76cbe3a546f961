package application

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
	repo "github.com/oksasatya/go-bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/go-bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/go-bootcamp-directory/pkg/geocoder"
	"github.com/oksasatya/go-bootcamp-directory/pkg/query"
	"github.com/oksasatya/go-bootcamp-directory/pkg/storage"
)

// EarthRadiusMiles converts a mile distance into radians for radius search.
const EarthRadiusMiles = 3963.0

// BootcampSearch is the free-text index kept beside the database.
type BootcampSearch interface {
	Put(ctx context.Context, b *entity.Bootcamp)
	Remove(ctx context.Context, id string)
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}

type BootcampInput struct {
	Name          string   `json:"name" binding:"required,max=50"`
	Description   string   `json:"description" binding:"required,max=500"`
	Website       string   `json:"website" binding:"omitempty,url"`
	Phone         string   `json:"phone" binding:"omitempty,phone"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Address       string   `json:"address" binding:"required"`
	Careers       []string `json:"careers" binding:"required,min=1,dive,career"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGi      bool     `json:"acceptGi"`
}

// BootcampPatch carries the fields present in an update request.
type BootcampPatch struct {
	Name          *string   `json:"name" binding:"omitempty,max=50"`
	Description   *string   `json:"description" binding:"omitempty,max=500"`
	Website       *string   `json:"website" binding:"omitempty,url"`
	Phone         *string   `json:"phone" binding:"omitempty,phone"`
	Email         *string   `json:"email" binding:"omitempty,email"`
	Address       *string   `json:"address"`
	Careers       *[]string `json:"careers" binding:"omitempty,min=1,dive,career"`
	Housing       *bool     `json:"housing"`
	JobAssistance *bool     `json:"jobAssistance"`
	JobGuarantee  *bool     `json:"jobGuarantee"`
	AcceptGi      *bool     `json:"acceptGi"`
}

// PhotoUpload is a file received from a multipart form.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type BootcampService struct {
	Repo          repo.BootcampRepository
	Courses       repo.CourseRepository
	Reviews       repo.ReviewRepository
	Tx            repo.TxManager
	Finder        repo.Finder
	Geocoder      geocoder.Geocoder
	Files         storage.FileStore
	Search        BootcampSearch
	MaxFileUpload int64
	Logger        *logrus.Logger
}

func NewBootcampService(
	r repo.BootcampRepository,
	courses repo.CourseRepository,
	reviews repo.ReviewRepository,
	tx repo.TxManager,
	finder repo.Finder,
	geo geocoder.Geocoder,
	files storage.FileStore,
	search BootcampSearch,
	maxFileUpload int64,
	logger *logrus.Logger,
) *BootcampService {
	return &BootcampService{
		Repo:          r,
		Courses:       courses,
		Reviews:       reviews,
		Tx:            tx,
		Finder:        finder,
		Geocoder:      geo,
		Files:         files,
		Search:        search,
		MaxFileUpload: maxFileUpload,
		Logger:        logger,
	}
}

func (s *BootcampService) List(ctx context.Context, spec query.Spec) (query.Result, error) {
	return s.Finder.Find(ctx, repo.ResourceBootcamps, spec, query.Populate{Path: "courses"})
}

func (s *BootcampService) Get(ctx context.Context, id string) (*entity.Bootcamp, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Bootcamp not found with id of "+id)
	}
	return b, nil
}

// Create geocodes the address and stores a bootcamp owned by u. Non-admins
// may publish a single bootcamp.
func (s *BootcampService) Create(ctx context.Context, u *entity.User, in BootcampInput) (*entity.Bootcamp, error) {
	if u.Role != entity.RoleAdmin {
		n, err := s.Repo.CountByUser(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, apperror.Validation(fmt.Sprintf("The user with ID %s has already published a bootcamp", u.ID))
		}
	}

	loc, err := s.locate(ctx, in.Address)
	if err != nil {
		return nil, err
	}
	b := &entity.Bootcamp{
		Name:          in.Name,
		Slug:          slug.Make(in.Name),
		Description:   in.Description,
		Website:       in.Website,
		Phone:         in.Phone,
		Email:         in.Email,
		Location:      loc,
		Careers:       in.Careers,
		Photo:         entity.DefaultPhoto,
		Housing:       in.Housing,
		JobAssistance: in.JobAssistance,
		JobGuarantee:  in.JobGuarantee,
		AcceptGi:      in.AcceptGi,
		UserID:        u.ID,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}
	s.Search.Put(ctx, b)
	return b, nil
}

func (s *BootcampService) Update(ctx context.Context, u *entity.User, id string, p BootcampPatch) (*entity.Bootcamp, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(u, b.UserID) {
		return nil, apperror.Forbidden(fmt.Sprintf("User with ID %s is not authorized to update this bootcamp", u.ID))
	}

	if p.Name != nil {
		b.Name = *p.Name
		b.Slug = slug.Make(*p.Name)
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Website != nil {
		b.Website = *p.Website
	}
	if p.Phone != nil {
		b.Phone = *p.Phone
	}
	if p.Email != nil {
		b.Email = *p.Email
	}
	if p.Careers != nil {
		b.Careers = *p.Careers
	}
	if p.Housing != nil {
		b.Housing = *p.Housing
	}
	if p.JobAssistance != nil {
		b.JobAssistance = *p.JobAssistance
	}
	if p.JobGuarantee != nil {
		b.JobGuarantee = *p.JobGuarantee
	}
	if p.AcceptGi != nil {
		b.AcceptGi = *p.AcceptGi
	}
	if p.Address != nil && strings.TrimSpace(*p.Address) != "" {
		loc, err := s.locate(ctx, *p.Address)
		if err != nil {
			return nil, err
		}
		b.Location = loc
	}

	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, err
	}
	s.Search.Put(ctx, b)
	return b, nil
}

// Delete removes the bootcamp with its courses and reviews in one transaction.
func (s *BootcampService) Delete(ctx context.Context, u *entity.User, id string) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(u, b.UserID) {
		return apperror.Forbidden(fmt.Sprintf("User with ID %s is not authorized to delete this bootcamp", u.ID))
	}

	err = s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		courses, err := s.Courses.DeleteByBootcamp(ctx, b.ID)
		if err != nil {
			return err
		}
		reviews, err := s.Reviews.DeleteByBootcamp(ctx, b.ID)
		if err != nil {
			return err
		}
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{
				"bootcamp_id": b.ID,
				"courses":     courses,
				"reviews":     reviews,
			}).Info("cascade delete")
		}
		return s.Repo.Delete(ctx, b.ID)
	})
	if err != nil {
		return err
	}
	s.Search.Remove(ctx, b.ID)
	return nil
}

// WithinRadius returns bootcamps within distance miles of the zipcode's centre.
func (s *BootcampService) WithinRadius(ctx context.Context, zipcode string, distance float64) ([]entity.Bootcamp, error) {
	if distance < 0 {
		return nil, apperror.Validation("Distance must be a positive number")
	}
	res, err := s.Geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindUpstream, "Unable to geocode zipcode", err)
	}
	out, err := s.Repo.WithinRadius(ctx, res.Latitude, res.Longitude, distance/EarthRadiusMiles)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []entity.Bootcamp{}
	}
	return out, nil
}

// UploadPhoto stores an image as photo_<id><ext> and records the name.
func (s *BootcampService) UploadPhoto(ctx context.Context, u *entity.User, id string, f PhotoUpload) (string, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !canManage(u, b.UserID) {
		return "", apperror.Forbidden(fmt.Sprintf("User with ID %s is not authorized to update this bootcamp", u.ID))
	}
	if !strings.HasPrefix(f.ContentType, "image") {
		return "", apperror.Validation("Please upload an image file")
	}
	if s.MaxFileUpload > 0 && f.Size > s.MaxFileUpload {
		return "", apperror.Validation("Please upload an image less than " + humanize.Bytes(uint64(s.MaxFileUpload)))
	}

	name := "photo_" + b.ID + filepath.Ext(f.Filename)
	if err := s.Files.Put(ctx, name, f.Body, f.Size, f.ContentType); err != nil {
		return "", apperror.Wrap(apperror.KindUpstream, "Problem with file upload", err)
	}
	if err := s.Repo.UpdatePhoto(ctx, b.ID, name); err != nil {
		return "", err
	}
	b.Photo = name
	s.Search.Put(ctx, b)
	return name, nil
}

func (s *BootcampService) SearchText(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if strings.TrimSpace(q) == "" {
		return nil, apperror.Validation("Please provide a search query")
	}
	hits, err := s.Search.Search(ctx, q, size)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindUpstream, "Search is unavailable", err)
	}
	return hits, nil
}

func (s *BootcampService) locate(ctx context.Context, address string) (*entity.Location, error) {
	r, err := s.Geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindUpstream, "Unable to geocode address", err)
	}
	return &entity.Location{
		Type:             "Point",
		Coordinates:      [2]float64{r.Longitude, r.Latitude},
		FormattedAddress: r.FormattedAddress,
		Street:           r.Street,
		City:             r.City,
		State:            r.StateCode,
		Zipcode:          r.Zipcode,
		Country:          r.CountryCode,
	}, nil
}
