package space

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/lakshaymaurya-felt/reclaim/internal/core"
	"github.com/lakshaymaurya-felt/reclaim/internal/logging"
	"github.com/lakshaymaurya-felt/reclaim/internal/logging/logtest"
)

const gib = uint64(core.BytesPerGB)

// fakeVolume returns successive readings, repeating the last one.
type fakeVolume struct {
	readings [][2]uint64
	calls    int
}

func (v *fakeVolume) Usage(context.Context, string) (uint64, uint64, error) {
	i := v.calls
	if i >= len(v.readings) {
		i = len(v.readings) - 1
	}
	v.calls++
	return v.readings[i][0], v.readings[i][1], nil
}

type fakeScanner struct {
	found map[OptionalAction][]Candidate
	err   error
	scans []OptionalAction
}

func (s *fakeScanner) Candidates(_ context.Context, a OptionalAction) ([]Candidate, error) {
	s.scans = append(s.scans, a)
	return s.found[a], s.err
}

type scriptedPrompter struct {
	answers   []bool
	questions []string
}

func (p *scriptedPrompter) Confirm(q string) (bool, error) {
	p.questions = append(p.questions, q)
	if len(p.answers) == 0 {
		return false, errors.New("unexpected prompt")
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

type recordingExecutor struct {
	ran []OptionalAction
	err error
}

func (e *recordingExecutor) RunOptional(_ context.Context, a OptionalAction) error {
	e.ran = append(e.ran, a)
	return e.err
}

type AdvisorSuite struct {
	suite.Suite
	log      *logtest.Recorder
	volume   *fakeVolume
	scanner  *fakeScanner
	prompter *scriptedPrompter
	advisor  *Advisor
}

func TestAdvisorSuite(t *testing.T) {
	suite.Run(t, new(AdvisorSuite))
}

func (s *AdvisorSuite) SetupTest() {
	s.log = logtest.New()
	s.volume = &fakeVolume{readings: [][2]uint64{{50 * gib, 100 * gib}}}
	s.scanner = &fakeScanner{found: map[OptionalAction][]Candidate{}}
	s.prompter = &scriptedPrompter{}
	s.advisor = NewAdvisor(s.log, s.volume, "C", s.scanner, s.prompter)
	s.advisor.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
}

func (s *AdvisorSuite) bigOneDrive() {
	s.scanner.found[OneDriveDehydration] = []Candidate{{Path: `C:\Users\ann\OneDrive`, Bytes: 12 * core.BytesPerGB}}
}

func (s *AdvisorSuite) bigPageFile() {
	s.scanner.found[PageFileResize] = []Candidate{{Path: `C:\pagefile.sys`, Bytes: 16 * core.BytesPerGB}}
}

func (s *AdvisorSuite) TestPreflightNoCandidatesNoPrompt() {
	var d Decisions
	s.Require().NoError(s.advisor.Preflight(context.Background(), &d))

	s.Empty(s.prompter.questions)
	s.Equal(Decisions{}, d)
}

func (s *AdvisorSuite) TestPreflightAlreadyEnabledNotScanned() {
	s.bigOneDrive()
	d := Decisions{OneDriveEnabled: true}

	s.Require().NoError(s.advisor.Preflight(context.Background(), &d))

	s.Equal([]OptionalAction{PageFileResize}, s.scanner.scans)
	s.Empty(s.prompter.questions)
}

func (s *AdvisorSuite) TestPreflightAcceptAndDecline() {
	s.bigOneDrive()
	s.bigPageFile()
	s.prompter.answers = []bool{true, false}
	var d Decisions

	s.Require().NoError(s.advisor.Preflight(context.Background(), &d))

	s.Len(s.prompter.questions, 2)
	s.Contains(s.prompter.questions[0], "OneDrive")
	s.Contains(s.prompter.questions[1], "page file")
	s.Equal(Decisions{OneDriveEnabled: true, PageFileDeclinedInitially: true}, d)
	s.True(s.log.Contains(`Large OneDrive dehydration candidate: C:\Users\ann\OneDrive (12 GiB)`))
}

func (s *AdvisorSuite) TestPreflightScanErrorIsWarning() {
	s.scanner.err = errors.New("access denied")
	var d Decisions

	s.Require().NoError(s.advisor.Preflight(context.Background(), &d))

	s.Empty(s.prompter.questions)
	s.Len(s.log.AtLevel(logging.LevelWarning), 2)
}

func (s *AdvisorSuite) TestPostflightNotLowDoesNothing() {
	d := Decisions{OneDriveDeclinedInitially: true}
	current := NewSnapshot("C", 50*gib, 100*gib, time.Time{})

	latest, err := s.advisor.Postflight(context.Background(), &d, current, current, &recordingExecutor{})
	s.Require().NoError(err)

	s.Equal(current, latest)
	s.Empty(s.scanner.scans)
}

func (s *AdvisorSuite) TestPostflightOnlyReofferDeclined() {
	s.bigOneDrive()
	s.bigPageFile()
	d := Decisions{PageFileDeclinedInitially: true}
	low := NewSnapshot("C", 5*gib, 100*gib, time.Time{})
	exec := &recordingExecutor{}

	s.prompter.answers = []bool{false}
	_, err := s.advisor.Postflight(context.Background(), &d, low, low, exec)
	s.Require().NoError(err)

	s.Equal([]OptionalAction{PageFileResize}, s.scanner.scans)
	s.Empty(exec.ran)
	s.True(d.PageFileDeclinedInitially)
	s.True(s.log.Contains("declined page file resize again"))
}

// Five GiB free of 100 GiB after cleanup, with a OneDrive folder declined up
// front. Accepting the re-prompt runs dehydration at once and re-measures.
func (s *AdvisorSuite) TestPostflightAcceptRunsImmediately() {
	s.bigOneDrive()
	s.volume.readings = [][2]uint64{{20 * gib, 100 * gib}}
	d := Decisions{OneDriveDeclinedInitially: true}
	baseline := NewSnapshot("C", 4*gib, 100*gib, time.Time{})
	low := NewSnapshot("C", 5*gib, 100*gib, time.Time{})
	exec := &recordingExecutor{}
	s.prompter.answers = []bool{true}

	latest, err := s.advisor.Postflight(context.Background(), &d, baseline, low, exec)
	s.Require().NoError(err)

	s.Equal([]OptionalAction{OneDriveDehydration}, exec.ran)
	s.Equal(Decisions{OneDriveEnabled: true}, d)
	s.Equal(20.0, latest.PercentFree)
	s.Equal(1, s.volume.calls)
	s.True(s.log.Contains("Space freed so far: 16.00 GB"))
}

func (s *AdvisorSuite) TestPostflightExecutorErrorStopsOffers() {
	s.bigOneDrive()
	s.bigPageFile()
	d := Decisions{OneDriveDeclinedInitially: true, PageFileDeclinedInitially: true}
	low := NewSnapshot("C", 5*gib, 100*gib, time.Time{})
	failure := errors.New("attrib.exe could not start")
	exec := &recordingExecutor{err: failure}
	s.prompter.answers = []bool{true}

	_, err := s.advisor.Postflight(context.Background(), &d, low, low, exec)

	s.Require().ErrorIs(err, failure)
	s.Equal([]OptionalAction{OneDriveDehydration}, exec.ran)
	s.Equal([]OptionalAction{OneDriveDehydration}, s.scanner.scans)
	s.Len(s.prompter.questions, 1)
	s.True(d.PageFileDeclinedInitially)
	s.Zero(s.volume.calls)
}

func (s *AdvisorSuite) TestPostflightNothingDeclinedNoPrompt() {
	s.bigOneDrive()
	var d Decisions
	low := NewSnapshot("C", 5*gib, 100*gib, time.Time{})

	_, err := s.advisor.Postflight(context.Background(), &d, low, low, &recordingExecutor{})
	s.Require().NoError(err)

	s.Empty(s.prompter.questions)
	s.True(s.log.Contains("still below 10%"))
}

func TestDecisionsLifecycle(t *testing.T) {
	var d Decisions
	d.decline(PageFileResize)
	assert.True(t, d.Declined(PageFileResize))
	assert.False(t, d.Enabled(PageFileResize))

	d.accept(PageFileResize)
	assert.True(t, d.Enabled(PageFileResize))
	assert.False(t, d.Declined(PageFileResize))
	assert.False(t, d.Enabled(OneDriveDehydration))
}

func TestSnapshotFigures(t *testing.T) {
	s := NewSnapshot("C", 5*gib, 100*gib, time.Time{})
	assert.Equal(t, 5.0, s.FreeGB)
	assert.Equal(t, 100.0, s.TotalGB)
	assert.Equal(t, 5.0, s.PercentFree)
	assert.True(t, s.Low())
	assert.Equal(t, "C: 5.00 GB free of 100.00 GB (5.00%)", s.String())

	later := NewSnapshot("C", 7*gib+gib/2, 100*gib, time.Time{})
	assert.Equal(t, 2.5, later.FreedSince(s))

	assert.Zero(t, PercentFree(10, 0))
	assert.False(t, NewSnapshot("C", 10*gib, 100*gib, time.Time{}).Low())
}

func TestTakeUsesVolume(t *testing.T) {
	vol := &fakeVolume{readings: [][2]uint64{{1 * gib, 4 * gib}}}
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	s, err := Take(context.Background(), vol, "D", at)
	require.NoError(t, err)
	assert.Equal(t, "D", s.Drive)
	assert.Equal(t, 25.0, s.PercentFree)
	assert.Equal(t, at, s.TakenAt)
}
