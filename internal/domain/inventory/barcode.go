package inventory

import (
	"fmt"
	"regexp"
	"strconv"
)

// BarcodePattern matches drum labels of the form "<orderId>-H<drumId>",
// optionally followed by the timestamp some scanners append.
// e.g. "52-H1024" or "52-H1024 2024/01/22 08:31:59"
const BarcodePattern = `^(\d+)-H(\d+)(?:\s+\d{4}/\d{2}/\d{2}\s+\d{2}:\d{2}:\d{2})?$`

var barcodeRegexp = regexp.MustCompile(BarcodePattern)

// Barcode is the decoded content of a drum label
type Barcode struct {
	OrderID int64
	DrumID  int64
}

// ParseBarcode decodes a raw scanned string into its order and drum
// identifiers. Malformed input returns *InvalidBarcodeError.
func ParseBarcode(raw string) (Barcode, error) {
	match := barcodeRegexp.FindStringSubmatch(raw)
	if match == nil {
		return Barcode{}, &InvalidBarcodeError{Raw: raw}
	}

	orderID, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return Barcode{}, &InvalidBarcodeError{Raw: raw}
	}
	drumID, err := strconv.ParseInt(match[2], 10, 64)
	if err != nil {
		return Barcode{}, &InvalidBarcodeError{Raw: raw}
	}

	return Barcode{OrderID: orderID, DrumID: drumID}, nil
}

// IsValidBarcode reports whether raw matches the drum label format
func IsValidBarcode(raw string) bool {
	return barcodeRegexp.MatchString(raw)
}

// String formats the barcode back into its label form
func (b Barcode) String() string {
	return fmt.Sprintf("%d-H%d", b.OrderID, b.DrumID)
}
