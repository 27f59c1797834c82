package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/icon"
	"github.com/osse101/PointStore_Go/internal/ledger"
	"github.com/osse101/PointStore_Go/internal/notify"
)

func (c *Console) defaultCommands() []Command {
	return []Command{
		{Name: CmdHelp, Usage: "help", Description: "List commands", Handler: c.help},
		{Name: CmdProfile, Usage: "profile", Description: "Show balance and cosmetics", Handler: c.profile},
		{Name: CmdInventory, Usage: "inventory", Description: "List owned items", Handler: c.inventory},
		{Name: CmdUse, Usage: "use <entry id>", Description: "Use an item", Handler: c.use},
		{Name: CmdCancel, Usage: "cancel <entry id>", Description: "Refund an unused item", Handler: c.cancel},
		{Name: CmdDiscard, Usage: "discard <entry id>", Description: "Delete an item without refund", Handler: c.discard},
		{Name: CmdIcons, Usage: "icons", Description: "Show the icon collection", Handler: c.icons},
		{Name: CmdEquip, Usage: "equip <icon id>", Description: "Equip an owned icon", Handler: c.equip},
		{Name: CmdUnequip, Usage: "unequip", Description: "Clear the equipped icon", Handler: c.unequip},
		{Name: CmdRoulette, Usage: "roulette", Description: "Show tickets and the wheel", Handler: c.roulette},
		{Name: CmdSpin, Usage: "spin", Description: "Spend a ticket on the roulette", Handler: c.spin},
		{Name: CmdHistory, Usage: "history [page] [all|earn|use]", Description: "Show point history", Handler: c.history},
		{Name: CmdWish, Usage: "wish", Description: "Show the wishlist", Handler: c.wishlist},
		{Name: CmdUnwish, Usage: "unwish <wish id>", Description: "Remove a wishlist entry", Handler: c.unwish},
		{Name: CmdAttendance, Usage: "attendance [YYYY-MM]", Description: "Show check-in days", Handler: c.attendance},
		{Name: CmdRefresh, Usage: "refresh", Description: "Reload everything", Handler: c.refresh},
		{Name: CmdQuit, Usage: "quit", Description: "Leave", Handler: c.quit},
	}
}

func (c *Console) newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(c.out)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	return table
}

func (c *Console) help(context.Context, []string) error {
	table := c.newTable([]string{"Command", "Description"})
	for _, cmd := range c.Help() {
		table.Append([]string{cmd.Usage, cmd.Description})
	}
	table.Render()
	return nil
}

func (c *Console) profile(context.Context, []string) error {
	w := c.economy.Wallet
	p, _ := w.Snapshot()
	fmt.Fprintf(c.out, "%s (%s)\n", w.DisplayName(), w.Level())
	fmt.Fprintf(c.out, "Balance: %s\n", w.Balance())
	if p.NickStyle != "" {
		fmt.Fprintf(c.out, "Nickname style: %s\n", p.NickStyle)
	}
	if equipped, ok := c.economy.Icons.Equipped(); ok {
		fmt.Fprintf(c.out, "Icon: %s\n", equipped.Name)
	}
	return nil
}

func (c *Console) inventory(context.Context, []string) error {
	entries := c.economy.Inventory.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(c.out, MsgEmptyInventory)
		return nil
	}
	table := c.newTable(headerInventory)
	for _, e := range entries {
		table.Append([]string{
			strconv.FormatInt(e.ID, 10),
			e.ItemName,
			string(e.ItemType),
			strconv.Itoa(e.Quantity),
			yesNo(e.IsEquipped()),
		})
	}
	table.Render()
	return nil
}

func (c *Console) use(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	return c.economy.Inventory.Use(ctx, id)
}

func (c *Console) cancel(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	return c.economy.Inventory.Cancel(ctx, id)
}

func (c *Console) discard(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	return c.economy.Inventory.Discard(ctx, id)
}

func (c *Console) icons(context.Context, []string) error {
	views := c.economy.Icons.View()
	table := c.newTable(headerIcons)
	for _, v := range views {
		table.Append([]string{
			strconv.FormatInt(v.ID, 10),
			v.Name,
			string(v.Rarity),
			yesNo(v.Owned),
			yesNo(v.Equipped),
		})
	}
	table.Render()

	stats := icon.Summarize(views)
	fmt.Fprintf(c.out, MsgIconStats+"\n", stats.Owned, stats.Total)
	for _, r := range stats.Rarities() {
		fmt.Fprintf(c.out, MsgRarityCount+"\n", r, stats.ByRarity[r])
	}
	return nil
}

func (c *Console) equip(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	return c.economy.Icons.Equip(ctx, id)
}

func (c *Console) unequip(ctx context.Context, _ []string) error {
	return c.economy.Icons.Unequip(ctx)
}

func (c *Console) roulette(context.Context, []string) error {
	g := c.economy.Roulette
	fmt.Fprintf(c.out, MsgTickets+"\n", g.Tickets())
	if last, ok := g.LastOutcome(); ok {
		fmt.Fprintf(c.out, MsgWheelAt+"\n", g.Rotation()%360, segmentLabel(last.Index))
	}
	return nil
}

func (c *Console) spin(ctx context.Context, _ []string) error {
	if _, err := c.economy.Roulette.Spin(ctx); err != nil {
		return err
	}
	return c.roulette(ctx, nil)
}

func (c *Console) history(ctx context.Context, args []string) error {
	v := c.economy.Ledger
	page, filter := v.Position()
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			page = n
			continue
		}
		f, err := domain.ParseHistoryFilter(arg)
		if err != nil {
			return errUsage
		}
		filter = f
	}
	if err := v.Load(ctx, page, filter); err != nil {
		fmt.Fprintln(c.out, notify.FailureNotice(notify.MsgHistoryLoadError, err).Message)
		return err
	}

	rows := v.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(c.out, MsgEmptyHistory)
		return nil
	}
	table := c.newTable(headerHistory)
	for _, r := range rows {
		table.Append([]string{r.CreatedAt.Format(historyDateLayout), r.Label, r.Points})
	}
	table.Render()
	fmt.Fprintln(c.out, pager(v.Window()))
	return nil
}

// pager renders the page buttons, current page in brackets
func pager(w ledger.Window) string {
	parts := make([]string, 0, len(w.Pages())+2)
	if w.HasPrev {
		parts = append(parts, "<")
	}
	for _, p := range w.Pages() {
		if p == w.Current {
			parts = append(parts, fmt.Sprintf("[%d]", p))
			continue
		}
		parts = append(parts, strconv.Itoa(p))
	}
	if w.HasNext {
		parts = append(parts, ">")
	}
	return strings.Join(parts, " ")
}

func (c *Console) wishlist(context.Context, []string) error {
	entries := c.economy.Wishlist.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(c.out, MsgEmptyWishlist)
		return nil
	}
	table := c.newTable(headerWishlist)
	for _, e := range entries {
		table.Append([]string{strconv.FormatInt(e.ID, 10), e.ItemName, notify.FormatPoints(e.ItemPrice)})
	}
	table.Render()
	return nil
}

func (c *Console) unwish(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	return c.economy.Wishlist.Remove(ctx, id)
}

func (c *Console) attendance(_ context.Context, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	month, err := monthOf(arg, c.now())
	if err != nil {
		return err
	}

	days := c.economy.Attendance.MarkedIn(month.Year(), month.Month())
	label := month.Format(monthLayout)
	if len(days) == 0 {
		fmt.Fprintf(c.out, MsgNoAttendance+"\n", label)
		return nil
	}
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(d))
	}
	fmt.Fprintf(c.out, MsgAttendance+"\n", len(days), label, strings.Join(parts, ", "))
	return nil
}

func (c *Console) refresh(ctx context.Context, _ []string) error {
	if err := c.economy.LoadAll(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, MsgRefreshed)
	return nil
}

func (c *Console) quit(context.Context, []string) error {
	fmt.Fprintln(c.out, MsgBye)
	return ErrQuit
}
