package callbacks

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/state"
	"github.com/Freeeeeet/tutoring_bot/internal/delayqueue"
	"github.com/Freeeeeet/tutoring_bot/internal/lock"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/repository"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const studentID int64 = 42

var (
	// 2025-10-06 - понедельник
	monday = civil.Date{Year: 2025, Month: time.October, Day: 6}
	ana    = &model.Teacher{ID: 1, Name: "Ana", Subject: "Inglés", Availability: []model.Availability{
		{Day: time.Monday, StartTime: "09:00", EndTime: "12:00"},
	}}
)

type staticDirectory struct {
	teachers []*model.Teacher
}

func (d *staticDirectory) ListTeachers(context.Context) ([]*model.Teacher, error) {
	return d.teachers, nil
}

func (d *staticDirectory) FindTeacherByName(_ context.Context, name string) (*model.Teacher, error) {
	for _, t := range d.teachers {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, nil
}

func (d *staticDirectory) FindTeacherByID(_ context.Context, id int64) (*model.Teacher, error) {
	for _, t := range d.teachers {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

type apiCall struct {
	method string
	fields map[string]string
}

// telegramAPI - поддельный Bot API, запоминающий вызовы
type telegramAPI struct {
	mu    sync.Mutex
	calls []apiCall
}

func (api *telegramAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := path.Base(r.URL.Path)
	fields := map[string]string{}
	if err := r.ParseMultipartForm(1 << 20); err == nil {
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
	}

	api.mu.Lock()
	api.calls = append(api.calls, apiCall{method: method, fields: fields})
	api.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if method == "editMessageText" {
		fmt.Fprint(w, `{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`)
		return
	}
	fmt.Fprint(w, `{"ok":true,"result":true}`)
}

func (api *telegramAPI) byMethod(method string) []apiCall {
	api.mu.Lock()
	defer api.mu.Unlock()

	var out []apiCall
	for _, c := range api.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

type fixture struct {
	handler *Handler
	booking *service.BookingService
	api     *telegramAPI
	bot     *bot.Bot
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	clock := model.FixedClock{At: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)}

	api := &telegramAPI{}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	b, err := bot.New("123:test", bot.WithSkipGetMe(), bot.WithServerURL(server.URL))
	require.NoError(t, err)

	store := repository.NewMemoryReservationStore()
	queue := delayqueue.NewQueue(repository.NewMemoryTaskStore(), delayqueue.NewLogNotifier(logger), clock, 10, logger)
	teachers := service.NewTeacherService(&staticDirectory{teachers: []*model.Teacher{ana}}, logger)
	reminders := service.NewReminderService(queue, clock, time.UTC, logger)
	booking := service.NewBookingService(store, teachers, reminders, lock.NewLocalLocker(), time.Hour, logger)
	slots := service.NewSlotService(store, teachers, time.Hour, logger)

	return &fixture{
		handler: NewHandler(teachers, slots, booking, state.NewManager(), clock, logger),
		booking: booking,
		api:     api,
		bot:     b,
	}
}

func (f *fixture) press(data string) {
	f.handler.route(common.NewHandlerContext(context.Background(), f.bot, &models.CallbackQuery{
		ID:   "cb-1",
		From: models.User{ID: studentID},
		Data: data,
		Message: models.MaybeInaccessibleMessage{
			Message: &models.Message{ID: 7, Chat: models.Chat{ID: studentID}},
		},
	}))
}

func TestReschedule_StaleSession(t *testing.T) {
	cases := map[string]func(f *fixture){
		"no state": func(*fixture) {},
		"no reservation id": func(f *fixture) {
			f.handler.State.SetState(studentID, state.StateRescheduling)
		},
		"expired session": func(f *fixture) {
			at := time.Now()
			f.handler.State = state.NewManagerWithTTL(time.Minute, func() time.Time { return at })
			f.handler.State.SetState(studentID, state.StateRescheduling)
			f.handler.State.SetData(studentID, state.KeyReservationID, "res-1")
			at = at.Add(2 * time.Minute)
		},
	}

	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			setup(f)

			f.press(common.RescheduleDayData(monday))

			answers := f.api.byMethod("answerCallbackQuery")
			require.Len(t, answers, 1)
			assert.Equal(t, "⌛ Перенос устарел. Откройте запись заново.", answers[0].fields["text"])
			assert.Equal(t, "true", answers[0].fields["show_alert"])
			assert.Empty(t, f.api.byMethod("editMessageText"))
		})
	}
}

func TestReschedule_LostSlotScreen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine, err := f.booking.Create(ctx, ana, monday, civil.Time{Hour: 9}, "")
	require.NoError(t, err)
	_, err = f.booking.Create(ctx, ana, monday, civil.Time{Hour: 10}, "")
	require.NoError(t, err)

	f.press(common.ReschedulePrefix + mine.ID)
	assert.Equal(t, state.StateRescheduling, f.handler.State.GetState(studentID))

	f.press(common.RescheduleSlotData(common.RescheduleDoPrefix, monday, civil.Time{Hour: 10}))

	edits := f.api.byMethod("editMessageText")
	require.Len(t, edits, 2)
	lost := edits[1].fields
	assert.Contains(t, lost["text"], "Перенос не удался")
	assert.Contains(t, lost["text"], common.ErrorMessage(service.ErrConflict), "cause is the occupied slot")
	assert.Contains(t, lost["reply_markup"], common.DayData(ana.ID, monday))

	// старая запись не восстановлена, сессия переноса закрыта
	_, err = f.booking.GetReservation(ctx, mine.ID)
	assert.ErrorIs(t, err, service.ErrReservationNotFound)
	assert.Equal(t, state.StateNone, f.handler.State.GetState(studentID))
}

func TestReschedule_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine, err := f.booking.Create(ctx, ana, monday, civil.Time{Hour: 9}, "")
	require.NoError(t, err)

	f.press(common.ReschedulePrefix + mine.ID)
	f.press(common.RescheduleSlotData(common.RescheduleDoPrefix, monday, civil.Time{Hour: 11}))

	edits := f.api.byMethod("editMessageText")
	require.Len(t, edits, 2)
	assert.Contains(t, edits[1].fields["text"], "Запись перенесена")

	list, err := f.booking.ListReservations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, civil.Time{Hour: 11}, list[0].Time)
}

func TestBook_ConflictShowsAlertAndFreshGrid(t *testing.T) {
	f := newFixture(t)

	_, err := f.booking.Create(context.Background(), ana, monday, civil.Time{Hour: 10}, "")
	require.NoError(t, err)

	f.press(common.SlotData(common.BookPrefix, ana.ID, monday, civil.Time{Hour: 10}))

	answers := f.api.byMethod("answerCallbackQuery")
	require.Len(t, answers, 1)
	assert.Equal(t, common.ErrorMessage(service.ErrConflict), answers[0].fields["text"])

	edits := f.api.byMethod("editMessageText")
	require.Len(t, edits, 1)
	assert.NotContains(t, edits[0].fields["reply_markup"], common.SlotData(common.SlotPrefix, ana.ID, monday, civil.Time{Hour: 10}))
	assert.Contains(t, edits[0].fields["reply_markup"], common.SlotData(common.SlotPrefix, ana.ID, monday, civil.Time{Hour: 9}))
}

func TestRoute_UnknownData(t *testing.T) {
	f := newFixture(t)

	f.press("what:ever")

	answers := f.api.byMethod("answerCallbackQuery")
	require.Len(t, answers, 1)
	assert.Equal(t, "❌ Неизвестная команда", answers[0].fields["text"])
}

func TestLostCause(t *testing.T) {
	lost := &service.RescheduleLostSlotError{Old: &model.Reservation{TeacherName: "Ana"}, Cause: service.ErrConflict}

	assert.Equal(t, service.ErrConflict, lostCause(fmt.Errorf("reschedule: %w", lost)))
	assert.Equal(t, service.ErrInvalidSlot, lostCause(service.ErrInvalidSlot))
}
