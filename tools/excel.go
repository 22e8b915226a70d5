package tools

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
)

// excelColumn 由 `excel:"标题[,percent]"` 标签声明的导出列
// percent 选项把 0~1 的比率渲染为百分数
type excelColumn struct {
	index   []int
	header  string
	percent bool
}

func collectColumns(t reflect.Type, parent []int, cols []excelColumn) []excelColumn {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue
		}

		idx := append(append([]int(nil), parent...), i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			cols = collectColumns(sf.Type, idx, cols)
			continue
		}

		tag := sf.Tag.Get("excel")
		if tag == "" || tag == "-" {
			// 只导出显式标注的列，数据库内部字段不进报表
			continue
		}
		parts := strings.Split(tag, ",")
		col := excelColumn{index: idx, header: parts[0]}
		for _, opt := range parts[1:] {
			if opt == "percent" {
				col.percent = true
			}
		}
		cols = append(cols, col)
	}
	return cols
}

// ExportToExcel 把带 excel 标签的结构体切片写入指定工作表，表头行冻结
func ExportToExcel(f *excelize.File, sheet string, data interface{}) error {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("导出数据不是切片: %T", data)
	}
	if v.Len() == 0 {
		return nil
	}

	elemType := v.Index(0).Type()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("导出数据不是结构体切片: %T", data)
	}

	cols := collectColumns(elemType, nil, nil)
	if len(cols) == 0 {
		return fmt.Errorf("类型 %s 没有可导出的列", elemType.Name())
	}

	if sheet == "" {
		sheet = "Sheet1"
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col.header); err != nil {
			return err
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}

	for row := 0; row < v.Len(); row++ {
		elem := v.Index(row)
		if elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}

		for colIndex, col := range cols {
			fv := elem.FieldByIndex(col.index)
			if fv.Kind() == reflect.Ptr {
				if fv.IsNil() {
					fv = reflect.Value{}
				} else {
					fv = fv.Elem()
				}
			}

			var value interface{}
			switch {
			case !fv.IsValid():
				value = ""
			case col.percent && fv.Kind() == reflect.Float64:
				value = fmt.Sprintf("%.1f%%", fv.Float()*100)
			case fv.Kind() == reflect.Bool:
				if fv.Bool() {
					value = "是"
				} else {
					value = "否"
				}
			default:
				value = fv.Interface()
			}

			cell, err := excelize.CoordinatesToCellName(colIndex+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
