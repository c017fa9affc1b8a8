package finance

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MonthAll selects the whole fiscal year on either end of a month range.
const MonthAll = "all"

var validate = validator.New()

// FilterSelection is the explicit, immutable scope of one analysis call.
// Every engine function receives its inputs already scoped by one of these;
// there is no shared mutable filter state anywhere in the engine.
type FilterSelection struct {
	FiscalYear int    `json:"fiscal_year" validate:"required,gte=1990,lte=2999"`
	AccountId  int    `json:"account_id" validate:"gte=0"`
	CategoryId int    `json:"category_id" validate:"gte=0"`
	Vendor     string `json:"vendor"`
	StartMonth string `json:"start_month" validate:"required"`
	EndMonth   string `json:"end_month" validate:"required"`
}

func (f FilterSelection) Validate() error {
	if err := validate.Struct(f); err != nil {
		return err
	}
	if !isValidMonthSelector(f.StartMonth) {
		return fmt.Errorf("invalid start month %q", f.StartMonth)
	}
	if !isValidMonthSelector(f.EndMonth) {
		return fmt.Errorf("invalid end month %q", f.EndMonth)
	}
	return nil
}

// MonthCount is the pro-ration basis for the selected window.
func (f FilterSelection) MonthCount() int {
	return len(MonthsInRange(f.StartMonth, f.EndMonth))
}

func isValidMonthSelector(m string) bool {
	if m == MonthAll {
		return true
	}
	n, err := strconv.Atoi(m)
	return err == nil && len(m) == 2 && n >= 1 && n <= 12
}

// MonthsInRange resolves a (start, end) month selection into the ordered set
// of applicable statement months. Either end may be MonthAll:
// (all, all) covers the full year, (m, all) covers [m, "12"], (all, m) covers
// ["01", m], and two bounded months form an inclusive range.
func MonthsInRange(start, end string) []string {
	first, last := 1, 12
	if start != MonthAll {
		if n, err := strconv.Atoi(start); err == nil {
			first = n
		}
	}
	if end != MonthAll {
		if n, err := strconv.Atoi(end); err == nil {
			last = n
		}
	}

	var months []string
	for m := first; m <= last; m++ {
		months = append(months, fmt.Sprintf("%02d", m))
	}
	return months
}

// IsMonthInRange is the point-membership predicate matching MonthsInRange:
// IsMonthInRange(m, s, e) holds exactly when m appears in MonthsInRange(s, e).
func IsMonthInRange(month, start, end string) bool {
	n, err := strconv.Atoi(month)
	if err != nil {
		return false
	}
	first, last := 1, 12
	if start != MonthAll {
		if v, convErr := strconv.Atoi(start); convErr == nil {
			first = v
		}
	}
	if end != MonthAll {
		if v, convErr := strconv.Atoi(end); convErr == nil {
			last = v
		}
	}
	return n >= first && n <= last
}

// ProratedBudget scales a monthly budget figure to the selected window. An
// annual budget is never compared against actuals without this scaling.
func ProratedBudget(monthly decimal.Decimal, start, end string) decimal.Decimal {
	return monthly.Mul(decimal.NewFromInt(int64(len(MonthsInRange(start, end)))))
}
