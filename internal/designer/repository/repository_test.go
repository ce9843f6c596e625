package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"house-designer/internal/common/apierr"
	"house-designer/internal/designer/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedProject(t *testing.T, db *sql.DB, owner string) *models.Project {
	t.Helper()
	p := &models.Project{OwnerID: owner, Title: "Cottage"}
	require.NoError(t, NewProjectRepo(db).Add(context.Background(), p))
	return p
}

// countRows считает строки лайков или просмотров для сверки со счётчиками.
func countRows(t *testing.T, db *sql.DB, table, publicProjectID string) int {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE public_project_id = ?`, publicProjectID).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Init(context.Background(), db))
}

func TestSpecificationRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	project := seedProject(t, db, "user-1")
	repo := NewSpecificationRepo(db)

	spec := &models.HouseSpecification{
		ProjectID:       project.ID,
		ShapeType:       models.ShapeU,
		ShapeParameters: models.UShapeParams{BaseLength: 16, BaseWidth: 5, LeftWingLength: 7, LeftWingWidth: 4, RightWingLength: 6, RightWingWidth: 4},
		RoofType:        models.RoofHip,
		WallMaterial:    models.DefaultWallMaterial(),
		RoofMaterial:    models.DefaultRoofMaterial(),
		FloorMaterial:   models.DefaultFloorMaterial(),
		NumFloors:       2,
		Floors:          []models.Floor{{Index: 0, FloorHeight: 3}, {Index: 1, FloorHeight: 2.7}},
	}
	require.NoError(t, repo.Add(ctx, spec))

	got, err := repo.Get(ctx, models.SpecificationFilter{ID: spec.ID})
	require.NoError(t, err)
	assert.Equal(t, spec.ShapeParameters, got.ShapeParameters)
	assert.Equal(t, spec.Floors, got.Floors)
	assert.Equal(t, models.RoofHip, got.RoofType)

	got.ShapeType = models.ShapeSquare
	got.ShapeParameters = models.SquareParams{Size: 9}
	require.NoError(t, repo.Update(ctx, got))

	all, err := repo.GetAll(ctx, models.SpecificationFilter{ProjectID: project.ID})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.SquareParams{Size: 9}, all[0].ShapeParameters)

	require.NoError(t, repo.Delete(ctx, spec.ID))
	_, err = repo.Get(ctx, models.SpecificationFilter{ID: spec.ID})
	assert.True(t, errors.Is(err, apierr.ErrNotFound))
}

func TestPublishTwiceIsAlreadyPublic(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	project := seedProject(t, db, "user-1")
	repo := NewPublicProjectRepo(db)

	require.NoError(t, repo.Add(ctx, &models.PublicProject{ProjectID: project.ID, Title: "Cottage"}))
	err := repo.Add(ctx, &models.PublicProject{ProjectID: project.ID, Title: "Cottage"})
	assert.True(t, errors.Is(err, apierr.ErrAlreadyPublic))

	public, err := repo.IsProjectPublic(ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, public)
}

func TestToggleLikeKeepsCounterInSync(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	project := seedProject(t, db, "user-1")
	repo := NewPublicProjectRepo(db)
	pp := &models.PublicProject{ProjectID: project.ID, Title: "Cottage"}
	require.NoError(t, repo.Add(ctx, pp))

	res, err := repo.ToggleLike(ctx, pp.ID, "fan-1")
	require.NoError(t, err)
	assert.Equal(t, models.LikeResult{IsLiked: true, Likes: 1}, res)

	res, err = repo.ToggleLike(ctx, pp.ID, "fan-2")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Likes)

	res, err = repo.ToggleLike(ctx, pp.ID, "fan-1")
	require.NoError(t, err)
	assert.Equal(t, models.LikeResult{IsLiked: false, Likes: 1}, res)

	rows := countRows(t, db, "public_project_likes", pp.ID)
	assert.Equal(t, 1, rows)

	liked, err := repo.LikedBy(ctx, "fan-2", []string{pp.ID, "other"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{pp.ID: true}, liked)

	_, err = repo.ToggleLike(ctx, "missing", "fan-1")
	assert.True(t, errors.Is(err, apierr.ErrNotFound))
}

func TestConcurrentTogglesStayInSync(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	project := seedProject(t, db, "user-1")
	repo := NewPublicProjectRepo(db)
	pp := &models.PublicProject{ProjectID: project.ID, Title: "Cottage"}
	require.NoError(t, repo.Add(ctx, pp))

	const toggles = 50
	var g errgroup.Group
	for i := 0; i < toggles; i++ {
		g.Go(func() error {
			_, err := repo.ToggleLike(ctx, pp.ID, "fan")
			return err
		})
	}
	require.NoError(t, g.Wait())

	got, err := repo.GetByID(ctx, pp.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Likes, "even number of toggles by one user ends unliked")
	assert.Equal(t, got.Likes, countRows(t, db, "public_project_likes", pp.ID))

	for i := 0; i < toggles; i++ {
		user := fmt.Sprintf("fan-%d", i)
		g.Go(func() error {
			_, err := repo.ToggleLike(ctx, pp.ID, user)
			return err
		})
	}
	require.NoError(t, g.Wait())

	got, err = repo.GetByID(ctx, pp.ID)
	require.NoError(t, err)
	assert.Equal(t, toggles, got.Likes)
	assert.Equal(t, got.Likes, countRows(t, db, "public_project_likes", pp.ID))
}

func TestRecordViewCountsEveryCall(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	project := seedProject(t, db, "user-1")
	repo := NewPublicProjectRepo(db)
	pp := &models.PublicProject{ProjectID: project.ID, Title: "Cottage"}
	require.NoError(t, repo.Add(ctx, pp))

	for i := 0; i < 2; i++ {
		found, err := repo.RecordView(ctx, models.PublicProjectView{PublicProjectID: pp.ID, UserID: "fan-1", IPAddress: "10.0.0.1"})
		require.NoError(t, err)
		assert.True(t, found)
	}

	got, err := repo.GetByID(ctx, pp.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)

	rows := countRows(t, db, "public_project_views", pp.ID)
	assert.Equal(t, 2, rows)

	found, err := repo.RecordView(ctx, models.PublicProjectView{PublicProjectID: "missing"})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateDoesNotTouchCounters(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	project := seedProject(t, db, "user-1")
	repo := NewPublicProjectRepo(db)
	pp := &models.PublicProject{ProjectID: project.ID, Title: "Cottage"}
	require.NoError(t, repo.Add(ctx, pp))
	_, err := repo.ToggleLike(ctx, pp.ID, "fan-1")
	require.NoError(t, err)

	pp.Title = "Renamed"
	pp.Likes = 1000
	require.NoError(t, repo.Update(ctx, pp))

	got, err := repo.GetByID(ctx, pp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, 1, got.Likes)
}

func TestDeleteProjectCascades(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	project := seedProject(t, db, "user-1")

	spec := &models.HouseSpecification{
		ProjectID: project.ID, ShapeType: models.ShapeSquare, ShapeParameters: models.SquareParams{Size: 5},
		RoofType: models.RoofFlat, NumFloors: 1,
	}
	require.NoError(t, NewSpecificationRepo(db).Add(ctx, spec))
	extras := &models.Extras{HouseSpecificationsID: spec.ID, Doors: []models.Door{{ID: "d", Wall: "wall-1", Position: 0.5}}}
	require.NoError(t, NewExtrasRepo(db).Add(ctx, extras))
	pp := &models.PublicProject{ProjectID: project.ID, Title: "Cottage"}
	require.NoError(t, NewPublicProjectRepo(db).Add(ctx, pp))

	require.NoError(t, NewProjectRepo(db).Delete(ctx, project.ID))

	_, err := NewExtrasRepo(db).Get(ctx, models.ExtrasFilter{ID: extras.ID})
	assert.True(t, errors.Is(err, apierr.ErrNotFound))
	_, err = NewPublicProjectRepo(db).GetByID(ctx, pp.ID)
	assert.True(t, errors.Is(err, apierr.ErrNotFound))
}
