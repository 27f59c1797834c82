package fakeauthority

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/economy"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/server"
)

type inventoryRequest struct {
	InventoryNo int64  `json:"inventoryNo"`
	ExtraValue  string `json:"extraValue,omitempty"`
}

type iconRequest struct {
	IconID int64 `json:"iconId"`
}

type wishRequest struct {
	ItemNo int64 `json:"itemNo"`
}

type awardRequest struct {
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

// drawResponse omits the icon id; clients resolve it from the catalog
type drawResponse struct {
	Name     string        `json:"iconName"`
	Rarity   domain.Rarity `json:"iconRarity"`
	ImageSrc string        `json:"iconSrc,omitempty"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		server.RespondError(w, http.StatusBadRequest, ReasonBadRequest)
		return false
	}
	return true
}

func respondSuccess(w http.ResponseWriter) {
	server.RespondText(w, http.StatusOK, domain.ResponseSuccess)
}

func respondFail(w http.ResponseWriter, reason string) {
	server.RespondText(w, http.StatusOK, domain.ResponseFailPrefix+reason)
}

// changed logs a mutation and tells event stream clients what it touched
func (a *Authority) changed(r *http.Request, topics ...domain.Topic) {
	logger.FromContext(r.Context()).Info(LogMsgMutation, "path", r.URL.Path, "topics", topics)
	a.events.BroadcastChanged(topics...)
}

// @Summary Member profile
// @Tags profile
// @Produce json
// @Success 200 {object} domain.Profile
// @Security ApiKeyAuth
// @Router /point/main/store/my-info [get]
func (a *Authority) handleProfile(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	profile := a.state.profile
	a.mu.Unlock()
	server.RespondJSON(w, http.StatusOK, profile)
}

// @Summary Member inventory
// @Tags inventory
// @Produce json
// @Success 200 {array} domain.InventoryEntry
// @Security ApiKeyAuth
// @Router /point/main/store/inventory/my [get]
func (a *Authority) handleInventory(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	entries := slices.Clone(a.state.inventory)
	a.mu.Unlock()
	if entries == nil {
		entries = []domain.InventoryEntry{}
	}
	server.RespondJSON(w, http.StatusOK, entries)
}

// @Summary Icon catalog
// @Tags icons
// @Produce json
// @Success 200 {array} domain.Icon
// @Security ApiKeyAuth
// @Router /point/icon/all [get]
func (a *Authority) handleIconCatalog(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	catalog := slices.Clone(a.state.catalog)
	a.mu.Unlock()
	if catalog == nil {
		catalog = []domain.Icon{}
	}
	server.RespondJSON(w, http.StatusOK, catalog)
}

// @Summary Owned icons
// @Tags icons
// @Produce json
// @Success 200 {array} domain.OwnedIcon
// @Security ApiKeyAuth
// @Router /point/icon/my [get]
func (a *Authority) handleOwnedIcons(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	owned := slices.Clone(a.state.owned)
	a.mu.Unlock()
	if owned == nil {
		owned = []domain.OwnedIcon{}
	}
	server.RespondJSON(w, http.StatusOK, owned)
}

// @Summary Point history page
// @Tags history
// @Produce json
// @Param page query int false "Page, from 1"
// @Param type query string false "all, earn or use"
// @Success 200 {object} domain.LedgerPage
// @Failure 400 {object} server.ErrorResponse
// @Security ApiKeyAuth
// @Router /point/history [get]
func (a *Authority) handleHistory(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get(economy.QueryParamPage))
	if err != nil {
		page = economy.DefaultHistoryPage
	}
	filter, err := domain.ParseHistoryFilter(r.URL.Query().Get(economy.QueryParamType))
	if err != nil {
		server.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	a.mu.Lock()
	result := a.state.historyPage(page, filter)
	a.mu.Unlock()
	server.RespondJSON(w, http.StatusOK, result)
}

// @Summary Member wishlist
// @Tags wishlist
// @Produce json
// @Success 200 {array} domain.WishlistEntry
// @Security ApiKeyAuth
// @Router /point/main/store/wish/my [get]
func (a *Authority) handleWishlist(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	wishes := slices.Clone(a.state.wishlist)
	a.mu.Unlock()
	if wishes == nil {
		wishes = []domain.WishlistEntry{}
	}
	server.RespondJSON(w, http.StatusOK, wishes)
}

// @Summary Attendance calendar
// @Tags attendance
// @Produce json
// @Success 200 {array} string
// @Security ApiKeyAuth
// @Router /point/main/attendance/calendar [get]
func (a *Authority) handleAttendance(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	days := slices.Clone(a.state.attendance)
	a.mu.Unlock()
	if days == nil {
		days = []string{}
	}
	server.RespondJSON(w, http.StatusOK, days)
}

// handleUse applies an item. Domain refusals are fail: sentinels with 200.
//
// @Summary Use an inventory item
// @Tags inventory
// @Accept json
// @Produce plain
// @Param request body inventoryRequest true "Entry and optional value"
// @Success 200 {string} string "success or fail:<reason>"
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Security ApiKeyAuth
// @Router /point/main/store/inventory/use [post]
func (a *Authority) handleUse(w http.ResponseWriter, r *http.Request) {
	var req inventoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state

	i, ok := s.entry(req.InventoryNo)
	if !ok {
		respondFail(w, ReasonEntryNotFound)
		return
	}
	entry := s.inventory[i]
	if entry.Quantity <= 0 {
		respondFail(w, ReasonEmptyEntry)
		return
	}

	now := a.opts.Now()
	switch entry.ItemType {
	case domain.ItemTypeChangeNick:
		n := utf8.RuneCountInString(req.ExtraValue)
		if n < domain.NicknameMinLength || n > domain.NicknameMaxLength {
			respondFail(w, ReasonInvalidNickname)
			return
		}
		s.profile.Nickname = req.ExtraValue
		s.consume(i)
	case domain.ItemTypeDecoNick:
		// Cosmetic: equipping is persistent and does not consume the unit
		for j := range s.inventory {
			if s.inventory[j].ItemType == domain.ItemTypeDecoNick {
				s.inventory[j].Equipped = domain.Flag(j == i)
			}
		}
		s.profile.NickStyle = entry.ItemName
	case domain.ItemTypeVoucher:
		s.credit(entry.Price, domain.TrxGet, entry.ItemName, now)
		s.consume(i)
	case domain.ItemTypeRandomPoint:
		s.credit(a.opts.RandomPoint(), domain.TrxGet, entry.ItemName, now)
		s.consume(i)
	case domain.ItemTypeLevelUp:
		s.profile.Level = nextLevel(s.profile.DisplayLevel())
		s.consume(i)
	case domain.ItemTypeRandomIcon:
		respondFail(w, ReasonUseTheDraw)
		return
	case domain.ItemTypeRandomRoulette:
		respondFail(w, ReasonUseTheRoulette)
		return
	case domain.ItemTypeOther:
		s.consume(i)
	}

	a.changed(r, domain.TopicInventory, domain.TopicProfile, domain.TopicLedger)
	respondSuccess(w)
}

// handleCancel refunds one unit at its purchase price
//
// @Summary Cancel a purchase
// @Tags inventory
// @Accept json
// @Produce plain
// @Param request body inventoryRequest true "Entry to refund"
// @Success 200 {string} string "success or fail:<reason>"
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Security ApiKeyAuth
// @Router /point/main/store/cancel [post]
func (a *Authority) handleCancel(w http.ResponseWriter, r *http.Request) {
	var req inventoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state

	i, ok := s.entry(req.InventoryNo)
	if !ok {
		server.RespondError(w, http.StatusNotFound, ReasonEntryNotFound)
		return
	}
	s.credit(s.inventory[i].Price, domain.TrxGet, LedgerReasonRefund, a.opts.Now())
	s.consume(i)

	a.changed(r, domain.TopicInventory, domain.TopicProfile, domain.TopicLedger)
	respondSuccess(w)
}

// handleDiscard drops the whole entry without refund
//
// @Summary Discard an entry
// @Tags inventory
// @Accept json
// @Produce plain
// @Param request body inventoryRequest true "Entry to discard"
// @Success 200 {string} string "success or fail:<reason>"
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Security ApiKeyAuth
// @Router /point/main/store/inventory/delete [post]
func (a *Authority) handleDiscard(w http.ResponseWriter, r *http.Request) {
	var req inventoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state

	i, ok := s.entry(req.InventoryNo)
	if !ok {
		server.RespondError(w, http.StatusNotFound, ReasonEntryNotFound)
		return
	}
	s.inventory = slices.Delete(s.inventory, i, i+1)

	a.changed(r, domain.TopicInventory)
	respondSuccess(w)
}

// @Summary Draw a random icon
// @Tags icons
// @Accept json
// @Produce json
// @Param request body inventoryRequest true "Random icon ticket entry"
// @Success 200 {object} drawResponse
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Security ApiKeyAuth
// @Router /point/icon/draw [post]
func (a *Authority) handleDraw(w http.ResponseWriter, r *http.Request) {
	var req inventoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state

	i, ok := s.entry(req.InventoryNo)
	if !ok {
		server.RespondError(w, http.StatusNotFound, ReasonEntryNotFound)
		return
	}
	if s.inventory[i].ItemType != domain.ItemTypeRandomIcon {
		server.RespondError(w, http.StatusBadRequest, ReasonNotDrawable)
		return
	}
	if len(s.catalog) == 0 {
		server.RespondError(w, http.StatusConflict, ReasonEmptyIconCatalog)
		return
	}

	icon := a.opts.Drawer(slices.Clone(s.catalog))
	s.consume(i)
	if _, owned := s.ownsIcon(icon.ID); !owned {
		s.owned = append(s.owned, domain.OwnedIcon{Icon: icon})
	}

	a.changed(r, domain.TopicInventory, domain.TopicIcons)
	server.RespondJSON(w, http.StatusOK, drawResponse{Name: icon.Name, Rarity: icon.Rarity, ImageSrc: icon.ImageSrc})
}

// @Summary Equip an owned icon
// @Tags icons
// @Accept json
// @Produce plain
// @Param request body iconRequest true "Icon to equip"
// @Success 200 {string} string "success or fail:<reason>"
// @Failure 400 {object} server.ErrorResponse
// @Security ApiKeyAuth
// @Router /point/icon/equip [post]
func (a *Authority) handleEquip(w http.ResponseWriter, r *http.Request) {
	var req iconRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state

	i, ok := s.ownsIcon(req.IconID)
	if !ok {
		server.RespondError(w, http.StatusBadRequest, ReasonIconNotOwned)
		return
	}
	for j := range s.owned {
		s.owned[j].Equipped = domain.Flag(j == i)
	}
	s.profile.IconSrc = s.owned[i].ImageSrc

	a.changed(r, domain.TopicIcons, domain.TopicProfile)
	respondSuccess(w)
}

// @Summary Unequip the current icon
// @Tags icons
// @Produce plain
// @Success 200 {string} string "success or fail:<reason>"
// @Security ApiKeyAuth
// @Router /point/icon/unequip [post]
func (a *Authority) handleUnequip(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state

	for j := range s.owned {
		s.owned[j].Equipped = false
	}
	s.profile.IconSrc = ""

	a.changed(r, domain.TopicIcons, domain.TopicProfile)
	respondSuccess(w)
}

// handleRoulette consumes a ticket and answers with the bare segment index.
// A RETRY segment gives the ticket back.
//
// @Summary Spin the roulette
// @Tags roulette
// @Produce plain
// @Success 200 {string} string "segment index"
// @Failure 400 {object} server.ErrorResponse
// @Security ApiKeyAuth
// @Router /point/main/store/roulette [post]
func (a *Authority) handleRoulette(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state

	i, ok := s.ticketIndex()
	if !ok {
		server.RespondError(w, http.StatusBadRequest, ReasonNoTickets)
		return
	}

	index := a.opts.Spinner()
	segment, valid := domain.SegmentAt(index)
	switch {
	case valid && segment.Kind == domain.SegmentRetry:
	case valid && segment.Kind == domain.SegmentPoints:
		s.consume(i)
		s.credit(segment.Points, domain.TrxGet, LedgerReasonRoulette, a.opts.Now())
	default:
		s.consume(i)
	}

	a.changed(r, domain.TopicInventory, domain.TopicProfile, domain.TopicLedger)
	server.RespondText(w, http.StatusOK, strconv.Itoa(index))
}

// handleRemoveWish deletes by item id and succeeds when nothing matched
//
// @Summary Remove a wish
// @Tags wishlist
// @Accept json
// @Produce plain
// @Param request body wishRequest true "Item to remove"
// @Success 200 {string} string "success or fail:<reason>"
// @Failure 400 {object} server.ErrorResponse
// @Security ApiKeyAuth
// @Router /point/main/store/wish/delete [post]
func (a *Authority) handleRemoveWish(w http.ResponseWriter, r *http.Request) {
	var req wishRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.wishlist = slices.DeleteFunc(a.state.wishlist, func(e domain.WishlistEntry) bool {
		return e.ItemID == req.ItemNo
	})

	a.changed(r, domain.TopicWishlist)
	respondSuccess(w)
}

// handleAttendanceCheck records today's check-in and pays the attendance reward
//
// @Summary Check in for today
// @Tags attendance
// @Produce plain
// @Success 200 {string} string "success or fail:<reason>"
// @Security ApiKeyAuth
// @Router /point/main/attendance/check [post]
func (a *Authority) handleAttendanceCheck(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state

	now := a.opts.Now()
	today := domain.DayOf(now).String()
	if slices.Contains(s.attendance, today) {
		respondFail(w, ReasonAlreadyChecked)
		return
	}
	s.attendance = append(s.attendance, today)
	s.credit(AttendancePoints, domain.TrxGet, LedgerReasonAttendance, now)

	logger.FromContext(r.Context()).Info(LogMsgMutation, "path", r.URL.Path, "day", today)
	a.events.Broadcast(domain.EventTypeAttendanceChecked, nil)
	respondSuccess(w)
}

// handleAward credits points outside any member action
//
// @Summary Award points
// @Tags admin
// @Accept json
// @Produce plain
// @Param request body awardRequest true "Amount and reason"
// @Success 200 {string} string "success or fail:<reason>"
// @Failure 400 {object} server.ErrorResponse
// @Security ApiKeyAuth
// @Router /point/admin/award [post]
func (a *Authority) handleAward(w http.ResponseWriter, r *http.Request) {
	var req awardRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.credit(req.Amount, domain.TrxAdmin, req.Reason, a.opts.Now())

	logger.FromContext(r.Context()).Info(LogMsgMutation, "path", r.URL.Path, "amount", req.Amount)
	a.events.Broadcast(domain.EventTypePointAwarded, req)
	respondSuccess(w)
}
