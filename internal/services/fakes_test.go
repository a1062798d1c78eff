package services

import (
	"fmt"
	"sync"

	"github.com/mentorlink/mentorlink-backend/internal/jobs"
	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/storage"
)

type pushRecord struct {
	Token string
	Title string
	Body  string
}

type emailRecord struct {
	To      string
	Subject string
}

// fakeNotifier records sends and can be told to fail per channel.
type fakeNotifier struct {
	mu        sync.Mutex
	pushes    []pushRecord
	emails    []emailRecord
	failPush  bool
	failEmail bool
}

func (f *fakeNotifier) SendPush(token, title, body string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPush {
		return fmt.Errorf("push gateway down")
	}
	f.pushes = append(f.pushes, pushRecord{Token: token, Title: title, Body: body})
	return nil
}

func (f *fakeNotifier) SendEmail(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failEmail {
		return fmt.Errorf("email gateway down")
	}
	f.emails = append(f.emails, emailRecord{To: to, Subject: subject})
	return nil
}

func (f *fakeNotifier) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushes)
}

func (f *fakeNotifier) emailCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.emails)
}

type feedCall struct {
	OwnerID   uint
	ContentID uint
}

// recordingFeed records add/remove calls against the feed store.
type recordingFeed struct {
	mu       sync.Mutex
	added    []feedCall
	removed  []feedCall
	failNext bool
}

func (r *recordingFeed) AddContent(ownerID, contentID uint, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext {
		r.failNext = false
		return fmt.Errorf("feed service down")
	}
	r.added = append(r.added, feedCall{OwnerID: ownerID, ContentID: contentID})
	return nil
}

func (r *recordingFeed) RemoveContent(ownerID, contentID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, feedCall{OwnerID: ownerID, ContentID: contentID})
	return nil
}

// fakeGateway vaults cards and captures charges in memory.
type fakeGateway struct {
	declineVault  bool
	declineCharge bool
	charges       []float64
}

func (g *fakeGateway) VaultCard(nonce string) (*VaultedCard, error) {
	if g.declineVault {
		return nil, models.ErrInvalidPaymentPreauth
	}
	return &VaultedCard{Token: "tok_" + nonce, Last4: "4242", Brand: "visa"}, nil
}

func (g *fakeGateway) Charge(token string, amount float64, reference string) (string, error) {
	if g.declineCharge {
		return "", models.ErrInvalidPaymentPreauth
	}
	g.charges = append(g.charges, amount)
	return fmt.Sprintf("ch_%d", len(g.charges)), nil
}

// syncQueue runs dispatch jobs inline, making session side effects
// observable without a worker pool.
type syncQueue struct {
	dispatcher *Dispatcher
	enqueued   int
}

func (q *syncQueue) Enqueue(job jobs.DispatchJob) error {
	q.enqueued++
	return q.dispatcher.Dispatch(job.ActivityID, job.NotificationID)
}

// newFixture seeds a store with a user, an expert (backed by its own
// user account with one registered device) and returns the ids.
type fixture struct {
	store        *storage.MemoryStore
	user         *models.User
	expertUser   *models.User
	expert       *models.Expert
	profile      *models.ExpertProfile
	expertDevice *models.Device
}

func newFixture() *fixture {
	store := storage.NewMemoryStore()

	user, _ := store.CreateUser(&models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x"})
	expertUser, _ := store.CreateUser(&models.User{Name: "Bruno", Email: "bruno@example.com", PasswordHash: "x"})

	profile := &models.ExpertProfile{Headline: "Tax advisor", RatePerMinute: 2.5, AverageRating: 4.8, NumRatings: 12}
	expert, _ := store.CreateExpert(&models.Expert{UserID: expertUser.ID, IsApproved: true}, profile)

	device, _ := store.CreateDevice(&models.Device{UserID: expertUser.ID, Platform: "ios", Token: "expert-token-1"})

	return &fixture{
		store:        store,
		user:         user,
		expertUser:   expertUser,
		expert:       expert,
		profile:      profile,
		expertDevice: device,
	}
}
