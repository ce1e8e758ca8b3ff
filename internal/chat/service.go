package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"markethub/internal/logger"

	"go.uber.org/zap"
)

const (
	shopSender    = `Магазин "Электроника+"`
	userSender    = "Вы"
	shopGreeting  = "Здравствуйте! Чем могу помочь?"
	cannedReply   = "Спасибо за ваш вопрос! Менеджер свяжется с вами в ближайшее время."
	clockLayout   = "15:04"
	greetingClock = "14:23"
)

type thread struct {
	info     ThreadInfo
	messages []Message
}

// Service holds the conversation threads and the scripted auto-reply.
// Replies fire on their own timer goroutine, so unlike the rest of the
// state model this service is mutex-guarded.
type Service struct {
	mu sync.Mutex

	delay   time.Duration
	now     func() time.Time
	threads map[string]*thread
	order   []string

	nextTimerID int
	timers      map[int]*time.Timer
}

func NewService(replyDelay time.Duration) *Service {
	s := &Service{
		delay:   replyDelay,
		now:     time.Now,
		threads: make(map[string]*thread),
		timers:  make(map[int]*time.Timer),
	}

	s.addThread(ThreadInfo{ID: ThreadShop, Title: "Электроника+", Scripted: true})
	s.addThread(ThreadInfo{ID: ThreadGadgetStore, Title: "GadgetStore"})
	s.addThread(ThreadInfo{ID: ThreadSportLife, Title: "SportLife"})

	// The shop thread opens with the canned greeting already present.
	s.threads[ThreadShop].messages = []Message{{
		ID:     1,
		Sender: shopSender,
		Text:   shopGreeting,
		Time:   greetingClock,
		IsUser: false,
	}}

	return s
}

func (s *Service) addThread(info ThreadInfo) {
	s.threads[info.ID] = &thread{info: info}
	s.order = append(s.order, info.ID)
}

// Threads lists the conversation tabs in display order.
func (s *Service) Threads() []ThreadInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ThreadInfo, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.threads[id].info)
	}
	return out
}

// Messages copies out a thread's log in insertion order.
func (s *Service) Messages(threadID string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	th, ok := s.threads[threadID]
	if !ok {
		return nil, ErrThreadNotFound
	}
	return append([]Message(nil), th.messages...), nil
}

// Send appends a user message and schedules the scripted reply after the
// configured delay. Every send schedules its own independent reply: two
// quick sends yield two replies.
func (s *Service) Send(ctx context.Context, threadID, text string) (Message, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SendMessage"),
		zap.String("thread_id", threadID),
	)

	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	th, ok := s.threads[threadID]
	if !ok {
		return Message{}, ErrThreadNotFound
	}
	if !th.info.Scripted {
		log.Warn("send rejected", zap.Error(ErrThreadReadOnly))
		return Message{}, ErrThreadReadOnly
	}

	msg := Message{
		ID:     len(th.messages) + 1,
		Sender: userSender,
		Text:   text,
		Time:   s.now().Format(clockLayout),
		IsUser: true,
	}
	th.messages = append(th.messages, msg)

	s.scheduleReplyLocked(threadID)
	log.Debug("message sent", zap.Int("message_id", msg.ID))

	return msg, nil
}

func (s *Service) scheduleReplyLocked(threadID string) {
	id := s.nextTimerID
	s.nextTimerID++

	s.timers[id] = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		// CancelPending may have raced the firing timer; a deleted entry
		// means the reply was called off.
		if _, live := s.timers[id]; !live {
			return
		}
		delete(s.timers, id)

		th := s.threads[threadID]
		th.messages = append(th.messages, Message{
			ID:     len(th.messages) + 1,
			Sender: shopSender,
			Text:   cannedReply,
			Time:   s.now().Format(clockLayout),
			IsUser: false,
		})
	})
}

// CancelPending calls off every scheduled reply. Hooked to logout so a
// reply never lands in a logged-out widget.
func (s *Service) CancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
