package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-commerce/internal/models"
)

func TestStorage_RegisterAndGetUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	uid, err := storage.RegisterUser(context.Background(), models.User{
		Phone:        "992900000001",
		PasswordHash: "hashedpassword",
	})
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	byUID, err := storage.GetUser(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, "992900000001", byUID.Phone)
	assert.Equal(t, float64(0), byUID.Balance)
	assert.Nil(t, byUID.BirthDate)

	byPhone, err := storage.GetUserByPhone(context.Background(), "992900000001")
	require.NoError(t, err)
	assert.Equal(t, uid, byPhone.UID)

	_, err = storage.GetUser(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStorage_UpdateProfile(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "992900000001", "hashedpassword", 100)

	birthDate := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	updated, err := storage.UpdateProfile(context.Background(), uid, "Ali", "Rahimov", &birthDate)
	require.NoError(t, err)
	assert.Equal(t, "Ali", updated.FirstName)
	assert.Equal(t, "Rahimov", updated.LastName)
	require.NotNil(t, updated.BirthDate)
	assert.Equal(t, "1990-05-20", updated.BirthDate.Format("2006-01-02"))
	// баланс и телефон этим методом не меняются
	assert.Equal(t, float64(100), updated.Balance)
	assert.Equal(t, "992900000001", updated.Phone)

	// полный сброс: пустые имя и фамилия, дата рождения очищается
	reset, err := storage.UpdateProfile(context.Background(), uid, "", "", nil)
	require.NoError(t, err)
	assert.Empty(t, reset.FirstName)
	assert.Empty(t, reset.LastName)
	assert.Nil(t, reset.BirthDate)

	_, err = storage.UpdateProfile(context.Background(), "00000000-0000-0000-0000-000000000000", "Ali", "", nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStorage_DeleteUser_CascadesSubscriptions(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	uid := factory.CreateUser(t, "992900000001", "hashedpassword", 100)
	planID := factory.CreatePlan(t, "Basic", 50, 30, true)
	now := time.Now().UTC()
	factory.CreateSubscription(t, uid, planID, now, now.AddDate(0, 0, 30), true)

	count, err := storage.DeleteUser(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	verify.VerifyUserDeleted(t, uid)
	verify.VerifySubscriptionCount(t, uid, 0)

	count, err = storage.DeleteUser(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_ListActivePlans(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreatePlan(t, "Premium", 120, 90, true)
	factory.CreatePlan(t, "Basic", 50, 30, true)
	factory.CreatePlan(t, "Legacy", 10, 7, false)

	plans, err := storage.ListActivePlans(context.Background())
	require.NoError(t, err)

	// неактивные планы исключаются, активные отсортированы по возрастанию цены
	require.Len(t, plans, 2)
	assert.Equal(t, "Basic", plans[0].Name)
	assert.Equal(t, "Premium", plans[1].Name)
}

func TestStorage_GetActivePlan(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	activeID := factory.CreatePlan(t, "Basic", 50, 30, true)
	inactiveID := factory.CreatePlan(t, "Legacy", 10, 7, false)

	plan, err := storage.GetActivePlan(context.Background(), activeID)
	require.NoError(t, err)
	assert.Equal(t, "Basic", plan.Name)
	assert.Equal(t, float64(50), plan.Price)
	assert.Equal(t, 30, plan.Days)

	_, err = storage.GetActivePlan(context.Background(), inactiveID)
	assert.ErrorIs(t, err, ErrPlanNotFound)

	_, err = storage.GetActivePlan(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestStorage_PurchaseEntry_FirstPurchase(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	uid := factory.CreateUser(t, "992900000001", "hashedpassword", 100)
	planID := factory.CreatePlan(t, "Basic", 50, 30, true)

	plan, err := storage.GetActivePlan(context.Background(), planID)
	require.NoError(t, err)

	before := time.Now().UTC()
	receipt, err := storage.PurchaseEntry(context.Background(), uid, *plan)
	require.NoError(t, err)

	assert.Equal(t, float64(50), receipt.Balance)
	assert.WithinDuration(t, before.AddDate(0, 0, 30), receipt.ExpiresAt, time.Minute)

	verify.VerifyBalance(t, uid, 50)
	verify.VerifyActiveSubscriptionCount(t, uid, 1)
	verify.VerifySubscriptionCount(t, uid, 1)
}

func TestStorage_PurchaseEntry_StacksFromActiveSubscription(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	uid := factory.CreateUser(t, "992900000001", "hashedpassword", 200)
	planID := factory.CreatePlan(t, "Basic", 50, 30, true)

	now := time.Now().UTC()
	currentExpiry := now.AddDate(0, 0, 10)
	oldID := factory.CreateSubscription(t, uid, planID, now.AddDate(0, 0, -20), currentExpiry, true)

	plan, err := storage.GetActivePlan(context.Background(), planID)
	require.NoError(t, err)

	receipt, err := storage.PurchaseEntry(context.Background(), uid, *plan)
	require.NoError(t, err)

	// срок новой подписки отсчитывается от конца действующей
	assert.WithinDuration(t, currentExpiry.AddDate(0, 0, 30), receipt.ExpiresAt, time.Minute)

	// прежняя подписка деактивирована, активной осталась только новая
	verify.VerifyActiveSubscriptionCount(t, uid, 1)
	var oldActive bool
	err = storage.DB.QueryRow("SELECT is_active FROM subscriptions WHERE id = $1", oldID).Scan(&oldActive)
	require.NoError(t, err)
	assert.False(t, oldActive)
}

func TestStorage_PurchaseEntry_ExpiredSubscriptionIgnored(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)

	uid := factory.CreateUser(t, "992900000001", "hashedpassword", 200)
	planID := factory.CreatePlan(t, "Basic", 50, 30, true)

	now := time.Now().UTC()
	// подписка помечена активной, но срок уже истек
	factory.CreateSubscription(t, uid, planID, now.AddDate(0, 0, -60), now.AddDate(0, 0, -30), true)

	plan, err := storage.GetActivePlan(context.Background(), planID)
	require.NoError(t, err)

	receipt, err := storage.PurchaseEntry(context.Background(), uid, *plan)
	require.NoError(t, err)

	// отсчет идет от текущего момента, а не от истекшей даты
	assert.WithinDuration(t, now.AddDate(0, 0, 30), receipt.ExpiresAt, time.Minute)
}

func TestStorage_PurchaseEntry_InsufficientBalance(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	uid := factory.CreateUser(t, "992900000001", "hashedpassword", 10)
	planID := factory.CreatePlan(t, "Basic", 50, 30, true)

	plan, err := storage.GetActivePlan(context.Background(), planID)
	require.NoError(t, err)

	receipt, err := storage.PurchaseEntry(context.Background(), uid, *plan)
	assert.Nil(t, receipt)

	var insufficient *InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, float64(10), insufficient.Balance)
	assert.Equal(t, float64(50), insufficient.Price)
	assert.Equal(t, "Insufficient balance. Balance: 10.00, Price: 50.00", insufficient.Error())

	// никаких изменений: баланс прежний, подписок нет
	verify.VerifyBalance(t, uid, 10)
	verify.VerifySubscriptionCount(t, uid, 0)
}

func TestStorage_PurchaseEntry_UserNotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	planID := factory.CreatePlan(t, "Basic", 50, 30, true)

	plan, err := storage.GetActivePlan(context.Background(), planID)
	require.NoError(t, err)

	_, err = storage.PurchaseEntry(context.Background(), "00000000-0000-0000-0000-000000000000", *plan)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCheckDatabaseReady(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, CheckDatabaseReady(storage))

	_, err := storage.DB.Exec("DROP TABLE subscriptions CASCADE")
	require.NoError(t, err)

	assert.Error(t, CheckDatabaseReady(storage))
}

func TestStorage_ListEntrys(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)

	uid := factory.CreateUser(t, "992900000001", "hashedpassword", 0)
	otherUID := factory.CreateUser(t, "992900000002", "hashedpassword", 0)
	basicID := factory.CreatePlan(t, "Basic", 50, 30, true)
	premiumID := factory.CreatePlan(t, "Premium", 120, 90, true)

	now := time.Now().UTC()
	factory.CreateSubscription(t, uid, basicID, now.AddDate(0, 0, -40), now.AddDate(0, 0, -10), false)
	factory.CreateSubscription(t, uid, premiumID, now, now.AddDate(0, 0, 90), true)
	factory.CreateSubscription(t, otherUID, basicID, now, now.AddDate(0, 0, 30), true)

	views, err := storage.ListEntrys(context.Background(), uid)
	require.NoError(t, err)

	// только подписки пользователя, новые первыми
	require.Len(t, views, 2)
	assert.Equal(t, "Premium", views[0].Plan.Name)
	assert.True(t, views[0].IsActive)
	assert.Equal(t, "Basic", views[1].Plan.Name)
	assert.False(t, views[1].IsActive)

	empty, err := storage.ListEntrys(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
