package console

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/economy"
	"github.com/osse101/PointStore_Go/internal/fakeauthority"
	"github.com/osse101/PointStore_Go/internal/notify"
	"github.com/osse101/PointStore_Go/internal/notify/notifytest"
	"github.com/osse101/PointStore_Go/internal/pointstore"
)

type fixture struct {
	console *Console
	economy *pointstore.Economy
	out     *bytes.Buffer
}

func newFixture(t *testing.T, opts fakeauthority.Options) *fixture {
	t.Helper()
	authority := fakeauthority.New(opts)
	srv := httptest.NewServer(authority.Handler())

	clientOpts := economy.DefaultOptions(srv.URL)
	clientOpts.RetryInterval = time.Millisecond

	e := pointstore.New(pointstore.Options{
		Client:            economy.NewAPIClient(clientOpts),
		UI:                notifytest.New(),
		LoginID:           "member01",
		RouletteAnimation: time.Millisecond,
		RefreshWorkers:    2,
	})
	ctx := context.Background()
	e.Start(ctx)
	t.Cleanup(func() {
		e.Stop(ctx)
		authority.Close()
		srv.Close()
	})
	require.NoError(t, e.LoadAll(ctx))

	out := &bytes.Buffer{}
	c := New(e, out)
	c.now = func() time.Time { return time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC) }
	return &fixture{console: c, economy: e, out: out}
}

// exec runs one line and returns what it printed
func (f *fixture) exec(t *testing.T, line string) string {
	t.Helper()
	f.out.Reset()
	require.NoError(t, f.console.Exec(context.Background(), line))
	f.economy.Settle()
	return f.out.String()
}

type scriptReader struct {
	lines []string
}

func (s *scriptReader) ReadLine(context.Context, string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestExec_Profile(t *testing.T) {
	f := newFixture(t, fakeauthority.Options{})
	out := f.exec(t, "profile")
	assert.Contains(t, out, "tester (MEMBER)")
	assert.Contains(t, out, "Balance: 12,500 P")
	assert.Contains(t, out, "Icon: Sprout")
}

func TestExec_InventoryTable(t *testing.T) {
	f := newFixture(t, fakeauthority.Options{})
	out := f.exec(t, "inventory")
	for _, name := range []string{"Nickname Change", "Rainbow", "Icon Draw", "Roulette Ticket", "Level Up"} {
		assert.Contains(t, out, name)
	}
}

func TestExec_UseVoucher(t *testing.T) {
	f := newFixture(t, fakeauthority.Options{})
	f.exec(t, "use 6")
	assert.Equal(t, "13,500 P", f.economy.Wallet.Balance())
	assert.NotContains(t, f.exec(t, "inventory"), "Voucher")
}

func TestExec_UsageErrors(t *testing.T) {
	f := newFixture(t, fakeauthority.Options{})
	ctx := context.Background()

	err := f.console.Exec(ctx, "use")
	require.Error(t, err)
	assert.Equal(t, "usage: use <entry id>", err.Error())

	err = f.console.Exec(ctx, "equip abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage:")

	err = f.console.Exec(ctx, "history 1 sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage:")

	err = f.console.Exec(ctx, "dance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"dance"`)
}

func TestExec_FailedOperationIsNotAnError(t *testing.T) {
	f := newFixture(t, fakeauthority.Options{})
	// icon 4 is not owned; the failure is surfaced as a notice
	assert.NoError(t, f.console.Exec(context.Background(), "equip 4"))
}

func TestExec_IconsAndEquip(t *testing.T) {
	f := newFixture(t, fakeauthority.Options{
		Drawer: func(catalog []domain.Icon) domain.Icon { return catalog[1] },
	})
	out := f.exec(t, "icons")
	assert.Contains(t, out, "Phoenix")
	assert.Contains(t, out, "Owned 1 of 4 icons")
	assert.Contains(t, out, "  COMMON: 1")

	f.exec(t, "use 3")
	f.exec(t, "equip 2")
	equipped, ok := f.economy.Icons.Equipped()
	if assert.True(t, ok) {
		assert.Equal(t, "Comet", equipped.Name)
	}
}

func TestExec_Spin(t *testing.T) {
	f := newFixture(t, fakeauthority.Options{Spinner: func() int { return 0 }})
	out := f.exec(t, "spin")
	assert.Contains(t, out, "Roulette tickets: 1")
	assert.Contains(t, out, "landed on 1000 P")
	assert.Equal(t, "13,500 P", f.economy.Wallet.Balance())
}

func TestExec_HistoryFilter(t *testing.T) {
	f := newFixture(t, fakeauthority.Options{})
	out := f.exec(t, "history 1 use")
	assert.Contains(t, out, "-5,000 P")
	assert.NotContains(t, out, "+20,000 P")
	assert.Contains(t, out, "[1]")
}

func TestExec_Wishlist(t *testing.T) {
	f := newFixture(t, fakeauthority.Options{})
	out := f.exec(t, "wish")
	assert.Contains(t, out, "Golden Frame")
	assert.Contains(t, out, "20,000 P")

	f.exec(t, "unwish 1")
	assert.NotContains(t, f.exec(t, "wish"), "Golden Frame")
}

func TestExec_Attendance(t *testing.T) {
	seed := fakeauthority.DefaultSeed()
	seed.Attendance = []string{"2024-03-05", "2024-03-01", "2024-02-28"}
	f := newFixture(t, fakeauthority.Options{Seed: &seed})

	assert.Contains(t, f.exec(t, "attendance"), "Checked in 2 days in 2024-03: 1, 5")
	assert.Contains(t, f.exec(t, "attendance 2024-02"), "Checked in 1 days in 2024-02: 28")
	assert.Contains(t, f.exec(t, "attendance 2024-01"), "No check-ins in 2024-01")
}

func TestRun_StopsOnQuit(t *testing.T) {
	f := newFixture(t, fakeauthority.Options{})
	in := &scriptReader{lines: []string{"", "bogus", "refresh", "quit", "profile"}}

	require.NoError(t, f.console.Run(context.Background(), in))
	out := f.out.String()
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, MsgRefreshed)
	assert.True(t, strings.HasSuffix(out, MsgBye+"\n"))
	assert.Equal(t, []string{"profile"}, in.lines)
}

func TestRun_EndOfInput(t *testing.T) {
	f := newFixture(t, fakeauthority.Options{})
	assert.NoError(t, f.console.Run(context.Background(), &scriptReader{}))
}

func TestHelp_Sorted(t *testing.T) {
	f := newFixture(t, fakeauthority.Options{})
	cmds := f.console.Help()
	require.NotEmpty(t, cmds)
	for i := 1; i < len(cmds); i++ {
		assert.Less(t, cmds[i-1].Name, cmds[i].Name)
	}
	assert.Contains(t, f.exec(t, "help"), "attendance [YYYY-MM]")
}

func TestNavigate(t *testing.T) {
	f := newFixture(t, fakeauthority.Options{})
	f.console.Navigate(context.Background(), notify.ScreenRoulette)
	assert.Contains(t, f.out.String(), "Roulette tickets: 1")

	f.out.Reset()
	f.console.Navigate(context.Background(), notify.ScreenStore)
	assert.Contains(t, f.out.String(), "store screen is not available")
}
