package core

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

// ExcelFile abstracts workbook operations to decouple the codec from excelize.
type ExcelFile interface {
	Close() error
	GetSheetList() []string
	GetSheetDimension(sheet string) (string, error)
	SetSheetDimension(sheet, ref string) error
	GetSheetVisible(sheet string) (bool, error)
	SetSheetVisible(sheet string, visible bool) error
	GetRows(sheet string, raw bool) ([][]string, error)
	GetCellValue(sheet, cell string, raw bool) (string, error)
	GetCellType(sheet, cell string) (excelize.CellType, error)
	GetCellFormula(sheet, cell string) (string, error)
	SetCellFormula(sheet, cell, formula string) error
	GetCellStyle(sheet, cell string) (int, error)
	SetCellStyle(sheet, hcell, vcell string, styleID int) error
	GetStyle(styleID int) (*excelize.Style, error)
	GetCellHyperLink(sheet, cell string) (bool, string, error)
	SetCellHyperLink(sheet, cell, link, linkType string) error
	SetCellStr(sheet, cell, value string) error
	SetCellDefault(sheet, cell, value string) error
	SetCellBool(sheet, cell string, value bool) error
	SetCellValue(sheet, cell string, value interface{}) error
	GetMergeCells(sheet string) ([]excelize.MergeCell, error)
	MergeCell(sheet, hcell, vcell string) error
	GetPageMargins(sheet string) (excelize.PageLayoutMarginsOptions, error)
	SetPageMargins(sheet string, opts *excelize.PageLayoutMarginsOptions) error
	GetCalcProps() (excelize.CalcPropsOptions, error)
	SetCalcProps(opts *excelize.CalcPropsOptions) error
	WriteToBuffer() (*bytes.Buffer, error)
}

type ExcelizeFile struct {
	file *excelize.File
}

func openExcelBytes(data []byte) (ExcelFile, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &ExcelizeFile{file: file}, nil
}

func (e *ExcelizeFile) Close() error {
	return e.file.Close()
}

func (e *ExcelizeFile) GetSheetList() []string {
	return e.file.GetSheetList()
}

func (e *ExcelizeFile) GetSheetDimension(sheet string) (string, error) {
	return e.file.GetSheetDimension(sheet)
}

func (e *ExcelizeFile) SetSheetDimension(sheet, ref string) error {
	return e.file.SetSheetDimension(sheet, ref)
}

func (e *ExcelizeFile) GetSheetVisible(sheet string) (bool, error) {
	return e.file.GetSheetVisible(sheet)
}

func (e *ExcelizeFile) SetSheetVisible(sheet string, visible bool) error {
	return e.file.SetSheetVisible(sheet, visible)
}

func (e *ExcelizeFile) GetRows(sheet string, raw bool) ([][]string, error) {
	return e.file.GetRows(sheet, excelize.Options{RawCellValue: raw})
}

func (e *ExcelizeFile) GetCellValue(sheet, cell string, raw bool) (string, error) {
	return e.file.GetCellValue(sheet, cell, excelize.Options{RawCellValue: raw})
}

func (e *ExcelizeFile) GetCellType(sheet, cell string) (excelize.CellType, error) {
	return e.file.GetCellType(sheet, cell)
}

func (e *ExcelizeFile) GetCellFormula(sheet, cell string) (string, error) {
	return e.file.GetCellFormula(sheet, cell)
}

func (e *ExcelizeFile) SetCellFormula(sheet, cell, formula string) error {
	return e.file.SetCellFormula(sheet, cell, formula)
}

func (e *ExcelizeFile) GetCellStyle(sheet, cell string) (int, error) {
	return e.file.GetCellStyle(sheet, cell)
}

func (e *ExcelizeFile) SetCellStyle(sheet, hcell, vcell string, styleID int) error {
	return e.file.SetCellStyle(sheet, hcell, vcell, styleID)
}

func (e *ExcelizeFile) GetStyle(styleID int) (*excelize.Style, error) {
	return e.file.GetStyle(styleID)
}

func (e *ExcelizeFile) GetCellHyperLink(sheet, cell string) (bool, string, error) {
	return e.file.GetCellHyperLink(sheet, cell)
}

func (e *ExcelizeFile) SetCellHyperLink(sheet, cell, link, linkType string) error {
	return e.file.SetCellHyperLink(sheet, cell, link, linkType)
}

func (e *ExcelizeFile) SetCellStr(sheet, cell, value string) error {
	return e.file.SetCellStr(sheet, cell, value)
}

func (e *ExcelizeFile) SetCellDefault(sheet, cell, value string) error {
	return e.file.SetCellDefault(sheet, cell, value)
}

func (e *ExcelizeFile) SetCellBool(sheet, cell string, value bool) error {
	return e.file.SetCellBool(sheet, cell, value)
}

func (e *ExcelizeFile) SetCellValue(sheet, cell string, value interface{}) error {
	return e.file.SetCellValue(sheet, cell, value)
}

func (e *ExcelizeFile) GetMergeCells(sheet string) ([]excelize.MergeCell, error) {
	return e.file.GetMergeCells(sheet)
}

func (e *ExcelizeFile) MergeCell(sheet, hcell, vcell string) error {
	return e.file.MergeCell(sheet, hcell, vcell)
}

func (e *ExcelizeFile) GetPageMargins(sheet string) (excelize.PageLayoutMarginsOptions, error) {
	return e.file.GetPageMargins(sheet)
}

func (e *ExcelizeFile) SetPageMargins(sheet string, opts *excelize.PageLayoutMarginsOptions) error {
	return e.file.SetPageMargins(sheet, opts)
}

func (e *ExcelizeFile) GetCalcProps() (excelize.CalcPropsOptions, error) {
	return e.file.GetCalcProps()
}

func (e *ExcelizeFile) SetCalcProps(opts *excelize.CalcPropsOptions) error {
	return e.file.SetCalcProps(opts)
}

func (e *ExcelizeFile) WriteToBuffer() (*bytes.Buffer, error) {
	return e.file.WriteToBuffer()
}
