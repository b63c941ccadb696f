package api

import (
	"errors"
	"net/http"
	"strings"

	"candidate-management-db/internal/filter"
	"candidate-management-db/internal/model"
	apperrors "candidate-management-db/pkg/errors"

	"github.com/gin-gonic/gin"
)

// defaultStatsPage fetches the smallest page; only the total matters.
func defaultStatsPage() filter.PageParams {
	return filter.ParsePage("1", "1")
}

func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	_, totalCandidates, err := h.candidates.List(ctx, nil, defaultStatsPage())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to count candidates")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	subAdmins, err := h.accounts.CountByRole(ctx, model.RoleSubAdmin)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to count sub-admins")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	subUsers, err := h.accounts.CountByRole(ctx, model.RoleSubUser)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to count sub-users")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"totalCandidates": totalCandidates,
			"totalSubAdmins":  subAdmins,
			"totalSubUsers":   subUsers,
		},
	})
}

func (h *Handler) CreateSubAdmin(c *gin.Context) { h.createAccount(c, model.RoleSubAdmin) }
func (h *Handler) ListSubAdmins(c *gin.Context)  { h.listAccounts(c, model.RoleSubAdmin) }
func (h *Handler) GetSubAdmin(c *gin.Context)    { h.getAccount(c, model.RoleSubAdmin) }
func (h *Handler) UpdateSubAdmin(c *gin.Context) { h.updateAccount(c, model.RoleSubAdmin) }
func (h *Handler) DeleteSubAdmin(c *gin.Context) { h.deleteAccount(c, model.RoleSubAdmin) }

func (h *Handler) CreateSubUser(c *gin.Context) { h.createAccount(c, model.RoleSubUser) }
func (h *Handler) ListSubUsers(c *gin.Context)  { h.listAccounts(c, model.RoleSubUser) }
func (h *Handler) GetSubUser(c *gin.Context)    { h.getAccount(c, model.RoleSubUser) }
func (h *Handler) UpdateSubUser(c *gin.Context) { h.updateAccount(c, model.RoleSubUser) }
func (h *Handler) DeleteSubUser(c *gin.Context) { h.deleteAccount(c, model.RoleSubUser) }

func (h *Handler) createAccount(c *gin.Context, role model.Role) {
	var in model.AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	account, ok := h.buildAccount(c, in, role)
	if !ok {
		return
	}

	if err := h.accounts.Create(c.Request.Context(), account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "An account with this email already exists"})
			return
		}
		h.log.Error().Err(err).Str("role", string(role)).Msg("Failed to create account")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
		"data":    account,
	})
}

func (h *Handler) listAccounts(c *gin.Context, role model.Role) {
	accounts, err := h.accounts.ListByRole(c.Request.Context(), role)
	if err != nil {
		h.log.Error().Err(err).Str("role", string(role)).Msg("Failed to list accounts")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": accounts})
}

func (h *Handler) getAccount(c *gin.Context, role model.Role) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	account, err := h.accounts.GetByIDAndRole(c.Request.Context(), id, role)
	if err != nil {
		h.respondError(c, err, "Account not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": account})
}

func (h *Handler) updateAccount(c *gin.Context, role model.Role) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	account, err := h.accounts.GetByIDAndRole(c.Request.Context(), id, role)
	if err != nil {
		h.respondError(c, err, "Account not found")
		return
	}

	var in model.AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		account.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		if !strings.Contains(email, "@") {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid email address"})
			return
		}
		account.Email = email
	}

	if err := h.accounts.Update(c.Request.Context(), account); err != nil {
		h.respondError(c, err, "Account not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account updated successfully",
		"data":    account,
	})
}

func (h *Handler) deleteAccount(c *gin.Context, role model.Role) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.accounts.GetByIDAndRole(c.Request.Context(), id, role); err != nil {
		h.respondError(c, err, "Account not found")
		return
	}

	if err := h.accounts.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Account not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted successfully"})
}

func (h *Handler) CreateCompany(c *gin.Context) {
	var in model.CompanyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Company name is required"})
		return
	}

	company := &model.Company{Name: name}
	if in.Description != nil {
		company.Description = *in.Description
	}
	if err := h.reference.CreateCompany(c.Request.Context(), company); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateCompany) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Company already exists"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to create company")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Company created successfully",
		"data":    company,
	})
}

func (h *Handler) ListCompanies(c *gin.Context) {
	companies, err := h.reference.ListCompanies(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list companies")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": companies})
}

func (h *Handler) UpdateCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	company, err := h.reference.GetCompany(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Company not found")
		return
	}

	var in model.CompanyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		company.Name = name
	}
	if in.Description != nil {
		company.Description = *in.Description
	}

	if err := h.reference.UpdateCompany(c.Request.Context(), company); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateCompany) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Company already exists"})
			return
		}
		h.respondError(c, err, "Company not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Company updated successfully",
		"data":    company,
	})
}

func (h *Handler) DeleteCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.reference.DeleteCompany(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Company not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Company deleted successfully"})
}

func (h *Handler) CreateCity(c *gin.Context) {
	var in model.CityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	name := strings.TrimSpace(in.Name)
	state := strings.TrimSpace(in.State)
	if name == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "City name and state are required"})
		return
	}
	if !h.lookup.IsState(state) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown state"})
		return
	}

	city := &model.City{Name: name, State: state}
	if err := h.reference.CreateCity(c.Request.Context(), city); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateCity) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "City already exists in this state"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to create city")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "City created successfully",
		"data":    city,
	})
}

func (h *Handler) ListCities(c *gin.Context) {
	var (
		cities []model.City
		err    error
	)
	if state := strings.TrimSpace(c.Query("state")); state != "" {
		cities, err = h.reference.ListCitiesByState(c.Request.Context(), state)
	} else {
		cities, err = h.reference.ListCities(c.Request.Context())
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list cities")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": cities})
}

func (h *Handler) UpdateCity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	city, err := h.reference.GetCity(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "City not found")
		return
	}

	var in model.CityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		city.Name = name
	}
	if state := strings.TrimSpace(in.State); state != "" {
		if !h.lookup.IsState(state) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown state"})
			return
		}
		city.State = state
	}

	if err := h.reference.UpdateCity(c.Request.Context(), city); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateCity) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "City already exists in this state"})
			return
		}
		h.respondError(c, err, "City not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "City updated successfully",
		"data":    city,
	})
}

func (h *Handler) DeleteCity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.reference.DeleteCity(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "City not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "City deleted successfully"})
}

func (h *Handler) ListStates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.lookup.States()})
}

func (h *Handler) ListStateCities(c *gin.Context) {
	state := c.Param("state")
	if !h.lookup.IsState(state) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Unknown state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.lookup.Cities(state)})
}
