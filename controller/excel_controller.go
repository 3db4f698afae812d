package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"cafe-api/model"
	"cafe-api/repository"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportCafes bulk-inserts cafes from the first sheet of an uploaded .xlsx.
// The first row is a header naming the columns; invalid rows are skipped and
// reported, and the valid ones are inserted in a single transaction.
func (h *CafeController) ImportCafes(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"response": gin.H{"error": "Excel file is required"}})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"response": gin.H{"error": "Unable to open Excel file"}})
		return
	}
	defer file.Close()

	xl, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"response": gin.H{"error": "Failed to parse Excel file"}})
		return
	}
	defer xl.Close()

	rows, err := xl.GetRows(xl.GetSheetName(0))
	if err != nil || len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"response": gin.H{"error": "Excel must have a header row and at least one row of data"}})
		return
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range cafeColumns[:9] {
		if _, ok := header[col]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"response": gin.H{"error": fmt.Sprintf("missing column: %s", col)}})
			return
		}
	}

	var (
		cafes   []model.Cafe
		skipped []gin.H
	)
	for i, row := range rows[1:] {
		rowNum := i + 2
		cafe, err := cafeInputFromRow(header, row).toCafe()
		if err != nil {
			log.Printf("Import row %d skipped: %v", rowNum, err)
			skipped = append(skipped, gin.H{"row": rowNum, "error": err.Error()})
			continue
		}
		cafes = append(cafes, cafe)
	}

	if len(cafes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"response": gin.H{"error": "No valid rows found", "skipped": skipped}})
		return
	}

	if err := h.store.InsertBatch(c.Request.Context(), cafes); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"response": gin.H{"error": "import contains a cafe name that already exists"}})
			return
		}
		h.internalError(c, err)
		return
	}

	log.Printf("Imported %d cafes (%d rows skipped)", len(cafes), len(skipped))
	c.JSON(http.StatusOK, gin.H{"response": gin.H{
		"success": "Bulk cafe import successful",
		"count":   len(cafes),
		"skipped": skipped,
	}})
}

// ExportCafes streams every cafe as a spreadsheet using the import layout.
func (h *CafeController) ExportCafes(c *gin.Context) {
	cafes, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}

	xl := excelize.NewFile()
	defer xl.Close()
	sheet := xl.GetSheetName(0)

	header := make([]interface{}, len(cafeColumns))
	for i, col := range cafeColumns {
		header[i] = col
	}
	if err := xl.SetSheetRow(sheet, "A1", &header); err != nil {
		h.internalError(c, err)
		return
	}

	for i, cafe := range cafes {
		price := ""
		if cafe.CoffeePrice != nil {
			price = *cafe.CoffeePrice
		}
		row := []interface{}{
			cafe.Name, cafe.MapURL, cafe.ImgURL, cafe.Location, cafe.Seats,
			cafe.HasToilet, cafe.HasWifi, cafe.HasSockets, cafe.CanTakeCalls,
			price,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			h.internalError(c, err)
			return
		}
		if err := xl.SetSheetRow(sheet, cell, &row); err != nil {
			h.internalError(c, err)
			return
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="cafes.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
