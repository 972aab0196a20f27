package service_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/service"
	"github.com/pageza/pantrypal/backend/internal/session"
	"github.com/pageza/pantrypal/backend/internal/testhelpers"
	"github.com/pageza/pantrypal/backend/internal/types"
)

func TestSessionServiceReturnsLiveSession(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewSessionService(db, nil, nil, zap.NewNop())
	ctx := testContext(t)

	a, err := svc.Get(ctx, "cook")
	require.NoError(t, err)
	b, err := svc.Get(ctx, "cook")
	require.NoError(t, err)
	assert.Same(t, a, b)

	other, err := svc.Get(ctx, "someone-else")
	require.NoError(t, err)
	assert.NotSame(t, a, other)
}

func TestSessionServicePersistsAndHydrates(t *testing.T) {
	db, catalogSvc := seededCatalog(t)
	svc := service.NewSessionService(db, nil, nil, zap.NewNop())
	ctx := testContext(t)
	tacos := recipeByTitle(t, catalogSvc, "Classic Beef Tacos")

	sess, err := svc.Get(ctx, "cook")
	require.NoError(t, err)
	require.True(t, sess.AddIngredient("Tomatoes"))
	require.True(t, sess.AddIngredient("Garlic"))
	require.NoError(t, sess.ToggleMood(types.MoodQuick))
	require.NoError(t, sess.AssignMeal(types.Friday, types.Dinner, tacos.Summary(0), 6))

	var docs []models.SessionDocument
	require.NoError(t, db.Where("session_key = ?", "cook").Order("kind").Find(&docs).Error)
	require.Len(t, docs, 3)
	assert.Equal(t, models.DocumentMoods, docs[0].Kind)
	assert.EqualValues(t, 3, docs[0].Revision)
	assert.Equal(t, models.DocumentPantry, docs[1].Kind)
	assert.JSONEq(t, `["Tomatoes","Garlic"]`, docs[1].Payload)
	assert.Equal(t, models.DocumentPlan, docs[2].Kind)
	assert.EqualValues(t, 4, docs[2].Revision)

	want := sess.Snapshot()
	svc.Forget("cook")

	restored, err := svc.Get(ctx, "cook")
	require.NoError(t, err)
	assert.NotSame(t, sess, restored)
	assert.Equal(t, want, restored.Snapshot())

	// The restored session keeps counting from the stored revision.
	require.True(t, restored.RemoveIngredient(0))
	assert.EqualValues(t, 5, restored.Revision())
}

func TestSessionServiceSurvivesCorruptDocument(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	require.NoError(t, db.Create(&models.SessionDocument{
		SessionKey: "cook",
		Kind:       models.DocumentPantry,
		Payload:    `["Basil","Tomatoes"]`,
		Revision:   2,
	}).Error)
	require.NoError(t, db.Create(&models.SessionDocument{
		SessionKey: "cook",
		Kind:       models.DocumentPlan,
		Payload:    "{not json",
		Revision:   3,
	}).Error)

	svc := service.NewSessionService(db, nil, nil, zap.NewNop())
	ctx := testContext(t)
	sess, err := svc.Get(ctx, "cook")
	require.NoError(t, err)
	assert.Equal(t, []string{"Basil", "Tomatoes"}, sess.Snapshot().Pantry)
	assert.EqualValues(t, 3, sess.Revision())

	// The next pantry write keeps what was restored.
	require.True(t, sess.AddIngredient("Rice"))
	var doc models.SessionDocument
	require.NoError(t, db.Where("session_key = ? AND kind = ?", "cook", models.DocumentPantry).First(&doc).Error)
	assert.JSONEq(t, `["Basil","Tomatoes","Rice"]`, doc.Payload)
	assert.EqualValues(t, 4, doc.Revision)
}

func TestSessionServiceConcurrentGetSharesSession(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewSessionService(db, nil, nil, zap.NewNop())
	ctx := testContext(t)

	const callers = 8
	got := make([]*session.Session, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, err := svc.Get(ctx, "cook")
			assert.NoError(t, err)
			got[i] = sess
		}(i)
	}
	wg.Wait()

	for _, sess := range got {
		assert.Same(t, got[0], sess)
	}

	again, err := svc.Get(ctx, "cook")
	require.NoError(t, err)
	assert.Same(t, got[0], again)
}

func TestSessionServiceNotifiesObservers(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	cache := newMemoryCache()
	pub := &recordingPublisher{}
	svc := service.NewSessionService(db, cache, pub, zap.NewNop())
	ctx := testContext(t)

	sess, err := svc.Get(ctx, "cook")
	require.NoError(t, err)
	require.True(t, sess.AddIngredient("Basil"))
	require.NoError(t, sess.ToggleMood(types.MoodSpicy))

	assert.Equal(t, []string{"cook", "cook"}, cache.invalidated)
	require.Len(t, pub.messages, 2)

	msg := pub.messages[1]
	assert.Equal(t, service.MessageChanged, msg.Type)
	require.NotNil(t, msg.Event)
	assert.Equal(t, session.EventMoods, msg.Event.Kind)
	assert.EqualValues(t, 2, msg.Event.Revision)
	assert.EqualValues(t, 2, msg.Snapshot.Revision)
	assert.Equal(t, []string{"Basil"}, msg.Snapshot.Pantry)
	assert.Equal(t, []types.MoodTag{types.MoodSpicy}, msg.Snapshot.Moods)

	initial := svc.Message(sess, nil)
	assert.Equal(t, service.MessageSnapshot, initial.Type)
	assert.Nil(t, initial.Event)
}
