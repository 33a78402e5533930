package export

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportController struct {
	svc *Service
}

func NewExportController(svc *Service) *ExportController {
	return &ExportController{svc: svc}
}

// Export godoc
// @Summary Download every record as a workbook
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security BearerAuth
// @Router /admin/export [get]
func (ec *ExportController) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := ec.svc.Write(c.Request.Context(), &buf); err != nil {
		responses.FromError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+FileName(models.Now())+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func ExportRoutes(router *gin.RouterGroup, svc *Service, authMW gin.HandlerFunc) {
	exportController := NewExportController(svc)

	adminRoutes := router.Group("/admin")
	adminRoutes.Use(authMW, rmiddleware.AdminMiddleware())
	{
		adminRoutes.GET("/export", exportController.Export)
	}
}
