package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellixel001/suvashpanel/internal/models"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
)

func TestPackageListSendsActiveFiltersAsQuery(t *testing.T) {
	api := newMockAPI().on("GET", "/admin/exam/package/getall?classId=c9&position=Academic",
		`{"data":[{"_id":"p1","name":"Physics Pack","position":"Academic","classId":"c9","price":250}]}`)
	svc := NewPackageService(api, nil, nil, "/admin")

	pkgs, err := svc.List(context.Background(), models.PackageFilter{Position: "Academic", ClassID: "c9", SubjectID: "all"})
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.Equal(t, 250.0, pkgs[0].Price)

	_, err = svc.List(context.Background(), models.PackageFilter{})
	require.NoError(t, err)
	assert.Equal(t, "GET /admin/exam/package/getall", api.paths()[1])
}

func TestPackageCreateAndUpdate(t *testing.T) {
	api := newMockAPI().on("POST", "/admin/exam/package/create", `{"data":{"_id":"p2","name":"Job Prep","position":"Job"}}`)
	svc := NewPackageService(api, nil, nil, "admin")

	_, err := svc.Create(context.Background(), models.Package{Name: " ", Position: "Job"})
	require.Error(t, err)
	assert.Equal(t, "name is required", appErrors.FromError(err).Message)
	assert.Empty(t, api.calls)

	created, err := svc.Create(context.Background(), models.Package{Name: " Job Prep ", Position: "Job", Duration: 30})
	require.NoError(t, err)
	assert.Equal(t, "p2", created.ID)
	assert.Equal(t, "Job Prep", api.lastBody()["name"])

	updated, err := svc.Update(context.Background(), "p2", models.Package{Name: "Job Prep", Position: "Job", Price: 99})
	require.NoError(t, err)
	assert.Equal(t, "p2", updated.ID)
	assert.Equal(t, "PUT /admin/exam/package/update/p2", api.paths()[1])

	_, err = svc.Update(context.Background(), "", models.Package{Name: "x", Position: "Job"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
}

func TestPackageClassAndSubjectOptions(t *testing.T) {
	api := newMockAPI().
		on("GET", "/admin/exam/package/getclass/Academic", `{"data":[{"_id":"c9","name":"Class 9"}]}`).
		on("GET", "/admin/exam/package/getsubject/Academic/Class%209", `{"data":[{"_id":"s1","name":"Physics"}]}`)
	svc := NewPackageService(api, nil, nil, "/admin")

	classes, err := svc.Classes(context.Background(), "Academic")
	require.NoError(t, err)
	assert.Equal(t, []models.PackageOption{{ID: "c9", Name: "Class 9"}}, classes)

	subjects, err := svc.Subjects(context.Background(), "Academic", "Class 9")
	require.NoError(t, err)
	assert.Equal(t, "Physics", subjects[0].Name)

	_, err = svc.Subjects(context.Background(), "Academic", "")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
	assert.Len(t, api.calls, 2)
}

func TestPackageScopeResetsStaleSelections(t *testing.T) {
	api := newMockAPI().
		on("GET", "/admin/exam/package/getclass/Job", `{"data":[{"_id":"c21","name":"BCS"}]}`).
		on("GET", "/admin/exam/package/getclass/Academic", `{"data":[{"_id":"c9","name":"Class 9"}]}`).
		on("GET", "/admin/exam/package/getsubject/Academic/Class%209", `{"data":[{"_id":"s1","name":"Physics"}]}`)
	svc := NewPackageService(api, nil, nil, "/admin")
	ctx := context.Background()

	scoped, err := svc.Scope(ctx, models.PackageFilter{Position: "Job", ClassID: "c9", SubjectID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, models.PackageFilter{Position: "Job"}, scoped)

	scoped, err = svc.Scope(ctx, models.PackageFilter{Position: "Academic", ClassID: "c9", SubjectID: "s7"})
	require.NoError(t, err)
	assert.Equal(t, models.PackageFilter{Position: "Academic", ClassID: "c9"}, scoped)

	kept := models.PackageFilter{Position: "Academic", ClassID: "c9", SubjectID: "s1"}
	scoped, err = svc.Scope(ctx, kept)
	require.NoError(t, err)
	assert.Equal(t, kept, scoped)

	calls := len(api.calls)
	scoped, err = svc.Scope(ctx, models.PackageFilter{ClassID: "c9", Search: "chem"})
	require.NoError(t, err)
	assert.Equal(t, models.PackageFilter{ClassID: "c9", Search: "chem"}, scoped)
	assert.Len(t, api.calls, calls)
}
