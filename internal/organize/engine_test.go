package organize_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mediasort/internal/config"
	serr "mediasort/internal/errors"
	"mediasort/internal/log"
	"mediasort/internal/organize"
	"mediasort/pkg/testutils"
	"mediasort/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver returns a fixed date per basename, or an error.
type stubResolver struct {
	dates  map[string]time.Time
	errors map[string]error
	calls  []string
}

func (s *stubResolver) Resolve(_ context.Context, path string) (time.Time, error) {
	s.calls = append(s.calls, path)
	name := filepath.Base(path)
	if err, ok := s.errors[name]; ok {
		return time.Time{}, err
	}
	return s.dates[name], nil
}

type recordingReporter struct {
	outcomes  []types.ProcessingOutcome
	summaries []types.BatchSummary
}

func (r *recordingReporter) Report(o types.ProcessingOutcome) { r.outcomes = append(r.outcomes, o) }
func (r *recordingReporter) Summary(s types.BatchSummary)     { r.summaries = append(r.summaries, s) }

func testConfig(target string) *config.Config {
	cfg := config.New()
	cfg.TargetDir = target
	return cfg
}

func newEngine(t *testing.T, cfg *config.Config, opts ...organize.Option) (*organize.Engine, *recordingReporter) {
	t.Helper()
	rep := &recordingReporter{}
	opts = append([]organize.Option{organize.WithReporter(rep), organize.WithLogger(log.Discard())}, opts...)
	engine, err := organize.NewWithConfig(cfg, opts...)
	require.NoError(t, err)
	return engine, rep
}

func TestRun_ExifRoundTrip(t *testing.T) {
	root := t.TempDir()
	src := testutils.WriteFile(t, root, filepath.Join("in", "photo.tif"), testutils.ExifTIFF("2022:09:19 14:30:00"))
	target := filepath.Join(root, "library")

	engine, rep := newEngine(t, testConfig(target))
	summary, err := engine.Run(context.Background(), []string{src})
	require.NoError(t, err)

	want := filepath.Join(target, "2022", "09", "photo.tif")
	assert.FileExists(t, want)
	assert.NoFileExists(t, src)

	require.Len(t, summary.Outcomes, 1)
	assert.True(t, summary.Outcomes[0].Succeeded())
	assert.Equal(t, want, summary.Outcomes[0].Decision.DestinationPath)
	assert.Equal(t, types.ActionMove, summary.Outcomes[0].Action)
	assert.NotEmpty(t, summary.RunID)
	assert.Len(t, rep.outcomes, 1)
	assert.Len(t, rep.summaries, 1)
}

func TestRun_EmptyExifFieldFailsBatch(t *testing.T) {
	root := t.TempDir()
	src := testutils.WriteFile(t, root, "photo.tif", testutils.ExifTIFFRaw(testutils.TypeASCII, 1, []byte{0}))

	engine, rep := newEngine(t, testConfig(filepath.Join(root, "library")))
	summary, err := engine.Run(context.Background(), []string{src})

	assert.ErrorIs(t, err, serr.ErrErrorsSeen)
	require.Len(t, rep.outcomes, 1)
	assert.True(t, serr.IsResolutionFailure(rep.outcomes[0].Error))
	assert.Contains(t, serr.Render(rep.outcomes[0].Error), "empty exif date data found")
	assert.Equal(t, 1, summary.Failed())
	assert.FileExists(t, src)
}

func TestRun_BatchIndependence(t *testing.T) {
	root := t.TempDir()
	files := []string{
		testutils.WriteFile(t, root, "one.jpg", []byte("1")),
		testutils.WriteFile(t, root, "two.jpg", []byte("2")),
		testutils.WriteFile(t, root, "three.jpg", []byte("3")),
	}
	resolver := &stubResolver{
		dates: map[string]time.Time{
			"one.jpg":   time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC),
			"three.jpg": time.Date(2021, time.December, 1, 0, 0, 0, 0, time.UTC),
		},
		errors: map[string]error{
			"two.jpg": serr.NewResolutionError("failed to read exif data", filepath.Join(root, "two.jpg"), nil),
		},
	}
	target := filepath.Join(root, "library")

	engine, rep := newEngine(t, testConfig(target), organize.WithResolver(resolver))
	summary, err := engine.Run(context.Background(), files)

	assert.ErrorIs(t, err, serr.ErrErrorsSeen)
	assert.Equal(t, files, resolver.calls)
	require.Len(t, rep.outcomes, 3)
	assert.True(t, rep.outcomes[0].Succeeded())
	assert.False(t, rep.outcomes[1].Succeeded())
	assert.True(t, rep.outcomes[2].Succeeded())
	assert.Equal(t, 2, summary.Succeeded())

	assert.FileExists(t, filepath.Join(target, "2020", "02", "one.jpg"))
	assert.FileExists(t, filepath.Join(target, "2021", "12", "three.jpg"))
	assert.FileExists(t, files[1])
}

func TestRun_EmptyList(t *testing.T) {
	resolver := &stubResolver{}
	engine, rep := newEngine(t, testConfig(t.TempDir()), organize.WithResolver(resolver))

	_, err := engine.Run(context.Background(), nil)
	assert.ErrorIs(t, err, serr.ErrNoInput)
	assert.Equal(t, serr.NoInput, serr.KindOf(err))
	assert.Empty(t, rep.outcomes)
	assert.Empty(t, rep.summaries)
	assert.Empty(t, resolver.calls)
}

func TestRun_SkipCollisionLeavesFilesystemUntouched(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "library")
	testutils.WriteFile(t, target, filepath.Join("2022", "09", "photo.jpg"), []byte("first"))
	src := testutils.WriteFile(t, root, "photo.jpg", []byte("second"))
	resolver := &stubResolver{dates: map[string]time.Time{"photo.jpg": time.Date(2022, time.September, 1, 0, 0, 0, 0, time.UTC)}}
	before := testutils.Snapshot(t, root)

	engine, rep := newEngine(t, testConfig(target), organize.WithResolver(resolver))
	_, err := engine.Run(context.Background(), []string{src})

	assert.ErrorIs(t, err, serr.ErrErrorsSeen)
	require.Len(t, rep.outcomes, 1)
	assert.True(t, serr.IsCollision(rep.outcomes[0].Error))
	assert.Equal(t, before, testutils.Snapshot(t, root))
}

func TestRun_DryRunMatchesLiveDestinations(t *testing.T) {
	date := time.Date(2022, time.September, 1, 0, 0, 0, 0, time.UTC)

	for _, action := range types.Actions() {
		for _, policy := range types.Collisions() {
			t.Run(string(action)+"/"+string(policy), func(t *testing.T) {
				setup := func() (string, []string) {
					root := t.TempDir()
					testutils.WriteFile(t, root, filepath.Join("library", "2022", "09", "b.jpg"), []byte("taken"))
					return root, []string{
						testutils.WriteFile(t, root, "a.jpg", []byte("a")),
						testutils.WriteFile(t, root, "b.jpg", []byte("b")),
					}
				}
				resolver := &stubResolver{dates: map[string]time.Time{"a.jpg": date, "b.jpg": date}}

				dryRoot, dryFiles := setup()
				cfg := testConfig(filepath.Join(dryRoot, "library"))
				cfg.Action, cfg.Collision, cfg.DryRun = action, policy, true
				before := testutils.Snapshot(t, dryRoot)

				dryEngine, dryRep := newEngine(t, cfg, organize.WithResolver(resolver))
				assert.True(t, dryEngine.IsDryRun())
				_, dryErr := dryEngine.Run(context.Background(), dryFiles)
				assert.Equal(t, before, testutils.Snapshot(t, dryRoot), "dry run must not mutate")

				liveRoot, liveFiles := setup()
				cfg = testConfig(filepath.Join(liveRoot, "library"))
				cfg.Action, cfg.Collision = action, policy

				liveEngine, liveRep := newEngine(t, cfg, organize.WithResolver(resolver))
				_, liveErr := liveEngine.Run(context.Background(), liveFiles)

				assert.Equal(t, liveErr == nil, dryErr == nil)
				require.Len(t, dryRep.outcomes, 2)
				require.Len(t, liveRep.outcomes, 2)
				for i := range dryRep.outcomes {
					assert.True(t, dryRep.outcomes[i].DryRun)
					relDry, _ := filepath.Rel(dryRoot, dryRep.outcomes[i].Decision.DestinationPath)
					relLive, _ := filepath.Rel(liveRoot, liveRep.outcomes[i].Decision.DestinationPath)
					if dryRep.outcomes[i].Decision.DestinationPath == "" {
						relDry = ""
					}
					if liveRep.outcomes[i].Decision.DestinationPath == "" {
						relLive = ""
					}
					assert.Equal(t, relLive, relDry)
				}
			})
		}
	}
}

func TestRun_OperationFailureIsReported(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "vanished.jpg")
	resolver := &stubResolver{dates: map[string]time.Time{"vanished.jpg": time.Date(2022, time.May, 1, 0, 0, 0, 0, time.UTC)}}

	engine, rep := newEngine(t, testConfig(filepath.Join(root, "library")), organize.WithResolver(resolver))
	_, err := engine.Run(context.Background(), []string{src})

	assert.ErrorIs(t, err, serr.ErrErrorsSeen)
	require.Len(t, rep.outcomes, 1)
	assert.True(t, serr.IsOperationFailure(rep.outcomes[0].Error))
	assert.Contains(t, serr.Render(rep.outcomes[0].Error), "failed to move file")
}

func TestProcess_ReportsSingleFile(t *testing.T) {
	root := t.TempDir()
	src := testutils.WriteFile(t, root, "clip.mov", []byte("frames"))
	resolver := &stubResolver{dates: map[string]time.Time{"clip.mov": time.Date(2019, time.July, 4, 0, 0, 0, 0, time.UTC)}}
	cfg := testConfig(filepath.Join(root, "library"))
	cfg.Action = types.ActionCopy

	engine, rep := newEngine(t, cfg, organize.WithResolver(resolver))
	outcome := engine.Process(context.Background(), src)

	require.NoError(t, outcome.Error)
	assert.Equal(t, []types.ProcessingOutcome{outcome}, rep.outcomes)
	assert.Empty(t, rep.summaries)
	assert.FileExists(t, src)
	assert.FileExists(t, filepath.Join(root, "library", "2019", "07", "clip.mov"))
}

func TestNewWithConfig_Errors(t *testing.T) {
	_, err := organize.NewWithConfig(nil)
	assert.True(t, serr.IsInvalidConfig(err))

	cfg := testConfig(".")
	cfg.Strategy = types.Strategy("astrology")
	_, err = organize.NewWithConfig(cfg)
	assert.True(t, serr.IsInvalidConfig(err))
}

func TestOrganizerFactory(t *testing.T) {
	t.Cleanup(organize.ResetOrganizerFactory)

	called := false
	organize.SetOrganizerFactory(func(cfg *config.Config, opts ...organize.Option) (organize.Organizer, error) {
		called = true
		return organize.NewWithConfig(cfg, opts...)
	})

	org, err := organize.CurrentOrganizerFactory(testConfig(t.TempDir()), organize.WithReporter(&recordingReporter{}))
	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, org.IsDryRun())

	organize.ResetOrganizerFactory()
	org, err = organize.CurrentOrganizerFactory(testConfig(t.TempDir()), organize.WithReporter(&recordingReporter{}))
	require.NoError(t, err)
	assert.IsType(t, &organize.Engine{}, org)
}
