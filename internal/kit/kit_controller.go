package kit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
)

type KitController struct {
	svc *Service
}

func NewKitController(svc *Service) *KitController {
	return &KitController{svc: svc}
}

type statusRequest struct {
	Status RequestStatus `json:"status" binding:"required"`
}

type messageRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// CreateKit godoc
// @Summary Add a kit to the catalogue
// @Tags Kits
// @Accept json
// @Param kit body KitInput true "Kit"
// @Success 201 {object} Kit
// @Security BearerAuth
// @Router /kits [post]
func (kc *KitController) CreateKit(c *gin.Context) {
	var req KitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	k, err := kc.svc.CreateKit(c.Request.Context(), req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, k)
}

// GetKits godoc
// @Summary Kit catalogue
// @Tags Kits
// @Success 200 {object} map[string]interface{}
// @Router /kits [get]
func (kc *KitController) GetKits(c *gin.Context) {
	kits, err := kc.svc.ListKits(c.Request.Context())
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"kits": kits})
}

// GetKit godoc
// @Summary Get a kit
// @Tags Kits
// @Param id path string true "Kit id"
// @Success 200 {object} Kit
// @Router /kits/{id} [get]
func (kc *KitController) GetKit(c *gin.Context) {
	k, err := kc.svc.GetKit(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, k)
}

// UpdateKit godoc
// @Summary Update a kit
// @Tags Kits
// @Accept json
// @Param id path string true "Kit id"
// @Param kit body KitInput true "Kit"
// @Success 200 {object} Kit
// @Security BearerAuth
// @Router /kits/{id} [put]
func (kc *KitController) UpdateKit(c *gin.Context) {
	var req KitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	k, err := kc.svc.UpdateKit(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, k)
}

// DeleteKit godoc
// @Summary Remove a kit
// @Tags Kits
// @Param id path string true "Kit id"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /kits/{id} [delete]
func (kc *KitController) DeleteKit(c *gin.Context) {
	if err := kc.svc.DeleteKit(c.Request.Context(), c.Param("id")); err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Kit deleted successfully"})
}

// SubmitKitRequest godoc
// @Summary Order a kit
// @Tags Kit Requests
// @Accept json
// @Param request body SubmitInput true "Order"
// @Success 201 {object} KitRequest
// @Security BearerAuth
// @Router /kit-requests [post]
func (kc *KitController) SubmitKitRequest(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	var req SubmitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	r, err := kc.svc.Submit(c.Request.Context(), actor.UserID, req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// GetKitRequests godoc
// @Summary List kit orders
// @Description Admins see every order, everyone else their own.
// @Tags Kit Requests
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /kit-requests [get]
func (kc *KitController) GetKitRequests(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	var (
		list []KitRequest
		err  error
	)
	if actor.IsAdmin && c.Query("mine") == "" {
		list, err = kc.svc.ListAll(c.Request.Context())
	} else {
		list, err = kc.svc.ListMine(c.Request.Context(), actor.UserID)
	}
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"requests": list})
}

// SetKitRequestStatus godoc
// @Summary Move a kit order through fulfilment
// @Tags Kit Requests
// @Accept json
// @Param id path string true "Order id"
// @Param body body statusRequest true "Status"
// @Success 200 {object} KitRequest
// @Security BearerAuth
// @Router /kit-requests/{id}/status [put]
func (kc *KitController) SetKitRequestStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	r, err := kc.svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// SetKitRequestMessage godoc
// @Summary Leave a note on a kit order
// @Tags Kit Requests
// @Accept json
// @Param id path string true "Order id"
// @Param body body messageRequest true "Message"
// @Success 200 {object} KitRequest
// @Security BearerAuth
// @Router /kit-requests/{id}/message [put]
func (kc *KitController) SetKitRequestMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	r, err := kc.svc.SetAdminMessage(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
