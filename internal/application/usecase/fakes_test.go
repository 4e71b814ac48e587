package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/diillson/aws-audit-reports/internal/domain/entity"
	"github.com/diillson/aws-audit-reports/internal/shared/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeStorage struct {
	buckets   []entity.Bucket
	listErr   error
	regions   map[string]entity.Fact[string]
	lifecycle map[string]entity.Fact[int]
	blocks    map[string]entity.Fact[entity.PublicAccessBlock]
	delay     func(bucket string) time.Duration

	mu                    sync.Mutex
	regionsAsked          map[string]string
	inFlight, maxInFlight int
}

func (f *fakeStorage) ListBuckets(context.Context) ([]entity.Bucket, error) {
	return f.buckets, f.listErr
}

func (f *fakeStorage) GetBucketRegion(_ context.Context, bucket string) entity.Fact[string] {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if f.delay != nil {
		time.Sleep(f.delay(bucket))
	}
	if fact, ok := f.regions[bucket]; ok {
		return fact
	}
	return entity.Present("us-east-1")
}

func (f *fakeStorage) GetLifecycleRuleCount(_ context.Context, region, bucket string) entity.Fact[int] {
	f.mu.Lock()
	if f.regionsAsked == nil {
		f.regionsAsked = map[string]string{}
	}
	f.regionsAsked[bucket] = region
	f.mu.Unlock()

	if fact, ok := f.lifecycle[bucket]; ok {
		return fact
	}
	return entity.Absent[int]()
}

func (f *fakeStorage) GetPublicAccessBlock(_ context.Context, _ string, bucket string) entity.Fact[entity.PublicAccessBlock] {
	if fact, ok := f.blocks[bucket]; ok {
		return fact
	}
	return entity.Present(entity.PublicAccessBlock{
		BlockPublicAcls: true, IgnorePublicAcls: true, BlockPublicPolicy: true, RestrictPublicBuckets: true,
	})
}

type fakeMetrics struct {
	usage map[string]map[string]entity.Fact[float64]

	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeMetrics) GetBucketSizeBytes(_ context.Context, region, bucket, storageType string, _ entity.MetricWindow) entity.Fact[float64] {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[bucket]++
	f.mu.Unlock()

	if fact, ok := f.usage[bucket][storageType]; ok {
		return fact
	}
	return entity.Absent[float64]()
}

func (f *fakeMetrics) callsFor(bucket string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[bucket]
}

type fakeIdentity struct {
	users    []entity.User
	listErr  error
	groups   map[string]entity.Fact[[]string]
	console  map[string]entity.Fact[bool]
	keys     map[string]entity.Fact[[]entity.AccessKey]
	policies map[string]entity.Fact[[]entity.Policy]
}

func (f *fakeIdentity) ListUsers(context.Context) ([]entity.User, error) {
	return f.users, f.listErr
}

func (f *fakeIdentity) ListGroupsForUser(_ context.Context, user string) entity.Fact[[]string] {
	if fact, ok := f.groups[user]; ok {
		return fact
	}
	return entity.Present([]string{})
}

func (f *fakeIdentity) HasConsoleAccess(_ context.Context, user string) entity.Fact[bool] {
	if fact, ok := f.console[user]; ok {
		return fact
	}
	return entity.Present(false)
}

func (f *fakeIdentity) ListAccessKeys(_ context.Context, user string) entity.Fact[[]entity.AccessKey] {
	if fact, ok := f.keys[user]; ok {
		return fact
	}
	return entity.Present([]entity.AccessKey{})
}

func (f *fakeIdentity) ListUserPolicies(_ context.Context, user string) entity.Fact[[]entity.Policy] {
	if fact, ok := f.policies[user]; ok {
		return fact
	}
	return entity.Present([]entity.Policy{})
}

type fakeAccount struct {
	id  string
	err error
}

func (f fakeAccount) GetAccountID(context.Context) (string, error) { return f.id, f.err }

type MockExportRepository struct {
	mock.Mock
}

func (m *MockExportRepository) ExportToCSV(report entity.Report, filename, outputDir string) (string, error) {
	args := m.Called(report, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *MockExportRepository) ExportToJSON(report entity.Report, filename, outputDir string) (string, error) {
	args := m.Called(report, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *MockExportRepository) ExportToPDF(report entity.Report, filename, outputDir string) (string, error) {
	args := m.Called(report, filename, outputDir)
	return args.String(0), args.Error(1)
}

type fakeConsole struct {
	mu        sync.Mutex
	successes []string
	warnings  []string
	infos     []string
	printed   []string
	progress  []*fakeProgress
}

func (c *fakeConsole) Print(a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.printed = append(c.printed, fmt.Sprint(a...))
}
func (c *fakeConsole) Printf(format string, a ...interface{}) { c.Print(fmt.Sprintf(format, a...)) }
func (c *fakeConsole) Println(a ...interface{})               { c.Print(a...) }

func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogError(format string, a ...interface{}) {}

func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.successes = append(c.successes, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Status(string) types.StatusHandle { return fakeStatus{} }

func (c *fakeConsole) ProgressWithTotal(_ string, total int) types.ProgressHandle {
	p := &fakeProgress{total: total}
	c.mu.Lock()
	c.progress = append(c.progress, p)
	c.mu.Unlock()
	return p
}

func (c *fakeConsole) CreateTable() types.TableInterface { return &fakeTable{} }

type fakeStatus struct{}

func (fakeStatus) Update(string) {}
func (fakeStatus) Stop()         {}

type fakeProgress struct {
	total, count int
	stopped      bool
}

func (p *fakeProgress) Increment() { p.count++ }
func (p *fakeProgress) Stop()      { p.stopped = true }

type fakeTable struct {
	rows [][]interface{}
}

func (t *fakeTable) AddColumn(string, ...interface{}) {}
func (t *fakeTable) AddRow(cells ...interface{})      { t.rows = append(t.rows, cells) }
func (t *fakeTable) Render() string                   { return fmt.Sprint(t.rows) }

func newTestUseCase(storage *fakeStorage, metrics *fakeMetrics, identity *fakeIdentity, export *MockExportRepository, console *fakeConsole) *AuditUseCase {
	uc := NewAuditUseCase(storage, metrics, identity, fakeAccount{id: "123456789012"}, export, console, zerolog.Nop())
	uc.now = func() time.Time { return testNow }
	return uc
}

func bucket(name string) entity.Bucket {
	return entity.Bucket{Name: name, CreationDate: time.Date(2021, 7, 4, 10, 11, 12, 0, time.UTC)}
}

func fullyBlocked() entity.Fact[entity.PublicAccessBlock] {
	return entity.Present(entity.PublicAccessBlock{
		BlockPublicAcls: true, IgnorePublicAcls: true, BlockPublicPolicy: true, RestrictPublicBuckets: true,
	})
}
