package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/intellixel001/suvashpanel/internal/apiclient"
	"github.com/intellixel001/suvashpanel/internal/filter"
	"github.com/intellixel001/suvashpanel/internal/models"
)

// PackageService manages exam packages through the admin endpoints.
type PackageService struct {
	api         apiCaller
	validator   *validator.Validate
	logger      *zap.Logger
	adminPrefix string
}

// NewPackageService constructs a PackageService.
func NewPackageService(api apiCaller, validate *validator.Validate, logger *zap.Logger, adminPrefix string) *PackageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &PackageService{api: api, validator: validate, logger: logger, adminPrefix: normalizePrefix(adminPrefix)}
}

// List fetches packages narrowed server side by position, class and subject.
func (s *PackageService) List(ctx context.Context, f models.PackageFilter) ([]models.Package, error) {
	query := url.Values{}
	if !filter.Unset(f.ClassID) {
		query.Set("classId", f.ClassID)
	}
	if !filter.Unset(f.SubjectID) {
		query.Set("subjectId", f.SubjectID)
	}
	if !filter.Unset(f.Position) {
		query.Set("position", f.Position)
	}
	path := s.adminPrefix + "/exam/package/getall"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	payload, err := s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Package](payload, "data")
}

// Create validates and creates a package.
func (s *PackageService) Create(ctx context.Context, pkg models.Package) (*models.Package, error) {
	pkg.ID = ""
	if err := s.validatePackage(&pkg); err != nil {
		return nil, err
	}
	payload, err := s.api.Post(ctx, s.adminPrefix+"/exam/package/create", pkg)
	if err != nil {
		return nil, err
	}
	return decodePackageEcho(payload, pkg), nil
}

// Update validates and replaces a package.
func (s *PackageService) Update(ctx context.Context, id string, pkg models.Package) (*models.Package, error) {
	if err := requireID(id, "package id"); err != nil {
		return nil, err
	}
	pkg.ID = id
	if err := s.validatePackage(&pkg); err != nil {
		return nil, err
	}
	payload, err := s.api.Put(ctx, s.adminPrefix+"/exam/package/update/"+url.PathEscape(id), pkg)
	if err != nil {
		return nil, err
	}
	return decodePackageEcho(payload, pkg), nil
}

// Scope resets the class and subject selections of f that its position no
// longer offers. Without a position nothing is checked.
func (s *PackageService) Scope(ctx context.Context, f models.PackageFilter) (models.PackageFilter, error) {
	if filter.Unset(f.Position) || (filter.Unset(f.ClassID) && filter.Unset(f.SubjectID)) {
		return f, nil
	}
	classes, err := s.Classes(ctx, f.Position)
	if err != nil {
		return f, err
	}
	var subjects []models.PackageOption
	for _, class := range classes {
		if class.ID == f.ClassID {
			if subjects, err = s.Subjects(ctx, f.Position, class.Name); err != nil {
				return f, err
			}
			break
		}
	}
	scoped := ScopePackageFilter(f, classes, subjects)
	if scoped != f {
		s.logger.Debug("package filter rescoped",
			zap.String("position", f.Position),
			zap.String("class", scoped.ClassID),
			zap.String("subject", scoped.SubjectID))
	}
	return scoped, nil
}

// Classes lists the classes available for position.
func (s *PackageService) Classes(ctx context.Context, position string) ([]models.PackageOption, error) {
	if err := requireID(position, "position"); err != nil {
		return nil, err
	}
	payload, err := s.api.Get(ctx, s.adminPrefix+"/exam/package/getclass/"+url.PathEscape(position))
	if err != nil {
		return nil, err
	}
	return decodeList[models.PackageOption](payload, "data")
}

// Subjects lists the subjects of className within position.
func (s *PackageService) Subjects(ctx context.Context, position, className string) ([]models.PackageOption, error) {
	if err := requireID(position, "position"); err != nil {
		return nil, err
	}
	if err := requireID(className, "class name"); err != nil {
		return nil, err
	}
	payload, err := s.api.Get(ctx, s.adminPrefix+"/exam/package/getsubject/"+url.PathEscape(position)+"/"+url.PathEscape(className))
	if err != nil {
		return nil, err
	}
	return decodeList[models.PackageOption](payload, "data")
}

func (s *PackageService) validatePackage(pkg *models.Package) error {
	pkg.Name = strings.TrimSpace(pkg.Name)
	pkg.Position = strings.TrimSpace(pkg.Position)
	if err := s.validator.Struct(pkg); err != nil {
		return validationError(err, "invalid package payload")
	}
	return nil
}

func decodePackageEcho(payload apiclient.Payload, sent models.Package) *models.Package {
	if data := payload.Field("data"); data != nil {
		var pkg models.Package
		if err := data.Decode(&pkg); err == nil {
			return &pkg
		}
	}
	return &sent
}
