package payroll

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// buildPayslipPDF writes a one-page PDF with the payslip breakdown. The
// built-in Helvetica font only covers Latin-1, so labels stay ASCII.
func buildPayslipPDF(p Payslip) ([]byte, error) {
	vnd := message.NewPrinter(language.Vietnamese)
	money := func(v int64) string { return vnd.Sprintf("%d VND", v) }

	name := p.EmployeeName
	if name == "" {
		name = p.EmployeeID
	}

	lines := []string{
		"PAYSLIP " + p.Period,
		"Employee: " + asciiOnly(name),
		"Status: " + p.Status,
		"",
		fmt.Sprintf("Workdays: %d / %d", p.WorkdaysActual, p.WorkdaysStandard),
		"Basic salary: " + money(p.BasicSalary),
		"Bonus: " + money(p.Bonus),
		"Penalty: " + money(p.Penalty),
		"Gross income: " + money(p.GrossIncome),
		"Insurance: " + money(p.InsuranceDeduction),
		"Assessable income: " + money(p.AssessableIncome),
		"Personal income tax: " + money(p.TaxAmount),
		"Net salary: " + money(p.NetSalary),
	}
	return renderPDF(lines)
}

func renderPDF(lines []string) ([]byte, error) {
	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n16 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}

// asciiOnly folds Vietnamese diacritics ("Nguyễn Văn Đức" -> "Nguyen Van Duc")
// and replaces anything else the base font cannot draw.
func asciiOnly(s string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == 'đ':
			return 'd'
		case r == 'Đ':
			return 'D'
		case r < 0x20 || r > 0x7e:
			return '?'
		}
		return r
	}, folded)
}
