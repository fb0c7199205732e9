package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	apperrors "networth_tracker/internal/errors"
	"networth_tracker/internal/middleware"
	"networth_tracker/internal/models"
	"networth_tracker/internal/repository"
	"networth_tracker/internal/services"
)

// AccountHandler handles account routes.
type AccountHandler struct {
	accountRepo *repository.AccountRepository
	balanceRepo *repository.BalanceRepository
	refresh     *services.RefreshService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountRepo *repository.AccountRepository, balanceRepo *repository.BalanceRepository, refresh *services.RefreshService) *AccountHandler {
	return &AccountHandler{
		accountRepo: accountRepo,
		balanceRepo: balanceRepo,
		refresh:     refresh,
	}
}

// AccountWithBalance pairs an account with its current balance snapshot.
type AccountWithBalance struct {
	*models.Account
	CurrentBalance *models.Balance `json:"current_balance,omitempty"`
}

// List returns the user's accounts with their current balances.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	accounts, err := h.accountRepo.GetByUserID(user.ID)
	if err != nil {
		respondError(w, apperrors.Internal("loading accounts", err))
		return
	}
	balances, err := h.balanceRepo.GetCurrentByUserID(user.ID)
	if err != nil {
		respondError(w, apperrors.Internal("loading balances", err))
		return
	}

	current := make(map[int64]*models.Balance, len(balances))
	for _, b := range balances {
		current[b.AccountID] = b
	}

	result := make([]AccountWithBalance, 0, len(accounts))
	for _, acc := range accounts {
		result = append(result, AccountWithBalance{
			Account:        acc,
			CurrentBalance: current[acc.ID],
		})
	}

	respondJSON(w, http.StatusOK, result)
}

// Get returns a single account with its current balance.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, ok := h.ownedAccount(w, r)
	if !ok {
		return
	}

	balance, err := h.balanceRepo.GetCurrentByAccountID(account.ID)
	if err != nil {
		respondError(w, apperrors.Internal("loading balance", err))
		return
	}

	respondJSON(w, http.StatusOK, AccountWithBalance{Account: account, CurrentBalance: balance})
}

type createAccountRequest struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Subtype       string  `json:"subtype"`
	Category      string  `json:"category"`
	WalletAddress string  `json:"wallet_address"`
	Balance       float64 `json:"balance"`
}

// Create adds a manually entered account with an initial current balance.
// Linked accounts come from the demo seeder or the link feed, never this
// endpoint.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Name == "" {
		respondError(w, apperrors.Validation("name is required"))
		return
	}

	accType, err := models.ParseAccountType(req.Type)
	if err != nil {
		respondError(w, apperrors.Validation(err.Error()))
		return
	}
	if !accType.IsManualType() {
		respondError(w, apperrors.Validationf("account type %q cannot be created manually", accType))
		return
	}
	category, err := models.ParseAssetCategory(req.Category)
	if err != nil {
		respondError(w, apperrors.Validation(err.Error()))
		return
	}

	account := &models.Account{
		UserID:        user.ID,
		Name:          req.Name,
		Type:          accType,
		Subtype:       req.Subtype,
		Category:      category,
		IsManual:      true,
		IsActive:      true,
		Currency:      "USD",
		WalletAddress: req.WalletAddress,
	}

	id, err := h.accountRepo.Create(account)
	if err != nil {
		respondError(w, apperrors.Internal("creating account", err))
		return
	}
	account.ID = id

	balance := &models.Balance{
		AccountID:   id,
		Balance:     req.Balance,
		BalanceDate: time.Now().UTC(),
		Source:      models.SourceManualEntry,
	}
	if _, err := h.balanceRepo.SetCurrent(balance); err != nil {
		respondError(w, apperrors.Internal("recording initial balance", err))
		return
	}

	respondJSON(w, http.StatusCreated, AccountWithBalance{Account: account, CurrentBalance: balance})
}

type updateBalanceRequest struct {
	Balance     float64  `json:"balance"`
	Available   *float64 `json:"available"`
	CreditLimit *float64 `json:"credit_limit"`
	Source      string   `json:"source"`
}

// UpdateBalance records a new current balance for an account, atomically
// superseding the prior snapshot.
func (h *AccountHandler) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	account, ok := h.ownedAccount(w, r)
	if !ok {
		return
	}

	var req updateBalanceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	source := models.SourceManualEntry
	if req.Source != "" {
		parsed, err := models.ParseBalanceSource(req.Source)
		if err != nil {
			respondError(w, apperrors.Validation(err.Error()))
			return
		}
		source = parsed
	}

	balance := &models.Balance{
		AccountID:   account.ID,
		Balance:     req.Balance,
		Available:   req.Available,
		CreditLimit: req.CreditLimit,
		BalanceDate: time.Now().UTC(),
		Source:      source,
	}
	if _, err := h.balanceRepo.SetCurrent(balance); err != nil {
		respondError(w, apperrors.Internal("recording balance", err))
		return
	}
	balance.IsCurrent = true

	respondJSON(w, http.StatusOK, balance)
}

// Refresh pulls fresh balances for the user's linked accounts from the
// configured balance provider.
func (h *AccountHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	updated, err := h.refresh.RefreshBalances(r.Context(), user.ID)
	if err != nil {
		respondError(w, apperrors.Internal("refreshing balances", err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

// QRCode renders a wallet account's address as a QR code PNG.
func (h *AccountHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	account, ok := h.ownedAccount(w, r)
	if !ok {
		return
	}
	if account.Type != models.AccountTypeWallet || account.WalletAddress == "" {
		respondError(w, apperrors.Validation("account has no wallet address"))
		return
	}

	png, err := qrcode.Encode(account.WalletAddress, qrcode.Medium, 256)
	if err != nil {
		respondError(w, apperrors.Internal("encoding QR code", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// ownedAccount loads the account from the URL and verifies ownership.
// Writes the error response itself when it returns false.
func (h *AccountHandler) ownedAccount(w http.ResponseWriter, r *http.Request) (*models.Account, bool) {
	user := middleware.GetUser(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, apperrors.Validation("invalid account id"))
		return nil, false
	}

	account, err := h.accountRepo.GetByID(id)
	if err != nil {
		respondError(w, apperrors.Internal("loading account", err))
		return nil, false
	}
	if account == nil || account.UserID != user.ID {
		respondError(w, apperrors.NotFound("account"))
		return nil, false
	}
	return account, true
}
