package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/storekart/PriceRules/config"
	"github.com/storekart/PriceRules/models"
	"github.com/storekart/PriceRules/utils"
)

// ruleExportSummary aggregates counts shown under the rule table
type ruleExportSummary struct {
	TotalRules    int
	ActiveRules   int
	ProductRules  int
	CartRules     int
	PercentRules  int
	FlatRules     int
	NoticeEnabled int
}

func fetchRulesForExport() ([]models.DiscountRule, ruleExportSummary, error) {
	var rules []models.DiscountRule
	err := config.DB.Preload("ProductFilters").Preload("CategoryFilters").
		Order("position ASC, id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, ruleExportSummary{}, err
	}

	var summary ruleExportSummary
	summary.TotalRules = len(rules)
	for _, rule := range rules {
		if rule.IsActive == "yes" {
			summary.ActiveRules++
		}
		if rule.DiscountOn == "total" {
			summary.CartRules++
		} else {
			summary.ProductRules++
		}
		if rule.DiscountType == "flat" {
			summary.FlatRules++
		} else {
			summary.PercentRules++
		}
		if rule.ShowNotice == "yes" {
			summary.NoticeEnabled++
		}
	}
	return rules, summary, nil
}

func ruleFilterCounts(rule models.DiscountRule) (included, excluded int) {
	for _, f := range rule.ProductFilters {
		if f.Kind == models.FilterExclude {
			excluded++
		} else {
			included++
		}
	}
	for _, f := range rule.CategoryFilters {
		if f.Kind == models.FilterExclude {
			excluded++
		} else {
			included++
		}
	}
	return included, excluded
}

// Admin: Download discount rules as Excel
func DownloadRulesExcel(c *gin.Context) {
	utils.LogInfo("DownloadRulesExcel called")

	rules, summary, err := fetchRulesForExport()
	if err != nil {
		utils.LogError("Failed to fetch rules: %v", err)
		utils.InternalServerError(c, "Failed to fetch rules", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d rules for Excel export", len(rules))

	// --- Excel Generation ---
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Discount Rules")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("PRICERULES - Discount Rules")
	titleRow = sheet.AddRow()
	titleRow.AddCell().SetString("Exported: " + time.Now().Format("2006-01-02 15:04"))
	sheet.AddRow() // spacing

	// Table headers
	headers := []string{"Position", "Title", "Applies To", "Type", "Amount", "Min Order", "Active", "Included Filters", "Excluded Filters", "Notice"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	// Table rows
	for _, rule := range rules {
		included, excluded := ruleFilterCounts(rule)
		row := sheet.AddRow()
		row.AddCell().SetInt(rule.Position)
		row.AddCell().SetString(rule.Title)
		row.AddCell().SetString(rule.DiscountOn)
		row.AddCell().SetString(rule.DiscountType)
		row.AddCell().SetString(rule.Amount)
		row.AddCell().SetString(rule.MinOrder)
		row.AddCell().SetString(rule.IsActive)
		row.AddCell().SetInt(included)
		row.AddCell().SetInt(excluded)
		row.AddCell().SetString(rule.ShowNotice)
	}

	sheet.AddRow() // spacing

	// --- Summary Section ---
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Rules", fmt.Sprintf("%d", summary.TotalRules)},
		{"Active Rules", fmt.Sprintf("%d", summary.ActiveRules)},
		{"Product Rules", fmt.Sprintf("%d", summary.ProductRules)},
		{"Cart Rules", fmt.Sprintf("%d", summary.CartRules)},
		{"Percentage Rules", fmt.Sprintf("%d", summary.PercentRules)},
		{"Flat Rules", fmt.Sprintf("%d", summary.FlatRules)},
		{"Notice Enabled", fmt.Sprintf("%d", summary.NoticeEnabled)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=discount_rules.xlsx")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel export with %d rules", len(rules))
}

// Admin: Download discount rules as PDF
func DownloadRulesPDF(c *gin.Context) {
	utils.LogInfo("DownloadRulesPDF called")

	rules, summary, err := fetchRulesForExport()
	if err != nil {
		utils.LogError("Failed to fetch rules: %v", err)
		utils.InternalServerError(c, "Failed to fetch rules", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d rules for PDF export", len(rules))

	// --- PDF Generation ---
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "PRICERULES - Discount Rules")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Exported: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	// Table headers
	headers := []string{"Pos", "Title", "Applies To", "Type", "Amount", "Min Order", "Active", "Incl", "Excl", "Notice"}
	colWidths := []float64{15, 70, 30, 25, 25, 25, 20, 15, 15, 20}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// Table rows
	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, rule := range rules {
		included, excluded := ruleFilterCounts(rule)
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", rule.Position), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, rule.Title, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, rule.DiscountOn, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, rule.DiscountType, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, rule.Amount, "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, rule.MinOrder, "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, rule.IsActive, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[7], 8, fmt.Sprintf("%d", included), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[8], 8, fmt.Sprintf("%d", excluded), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[9], 8, rule.ShowNotice, "1", 0, "C", fill, 0, "")
		pdf.Ln(-1)
	}

	// --- Summary Section ---
	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(70, 10, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	pdf.SetFillColor(255, 255, 255)
	summaryData := [][]string{
		{"Total Rules", fmt.Sprintf("%d", summary.TotalRules)},
		{"Active Rules", fmt.Sprintf("%d", summary.ActiveRules)},
		{"Product Rules", fmt.Sprintf("%d", summary.ProductRules)},
		{"Cart Rules", fmt.Sprintf("%d", summary.CartRules)},
		{"Percentage Rules", fmt.Sprintf("%d", summary.PercentRules)},
		{"Flat Rules", fmt.Sprintf("%d", summary.FlatRules)},
		{"Notice Enabled", fmt.Sprintf("%d", summary.NoticeEnabled)},
	}
	for _, data := range summaryData {
		pdf.CellFormat(50, 8, data[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, data[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=discount_rules.pdf")
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated PDF export with %d rules", len(rules))
}
