package builtins

import (
	"math"
	"time"

	"github.com/cwbudde/go-jsvm/internal/evaluator"
	"github.com/cwbudde/go-jsvm/internal/object"
)

// installDate wires the ES5 Date object onto a millisecond-since-epoch
// PrimitiveValue, the way internal/object already stores every other
// primitive wrapper — Date arithmetic here plays the role the teacher's
// TDateTime float arithmetic played for EncodeDate/EncodeTime, with
// time.Time doing the calendar math instead of a Delphi epoch offset.
func installDate(ev *evaluator.Evaluator) {
	proto := ev.DateProto
	proto.PrimitiveValue = object.Num(0)

	constructor(ev, "Date", 7, proto,
		func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
			return object.Str(timeFromMillis(nowMillis()).Format(dateDisplayLayout)), nil
		},
		func(args []object.Value) (object.Value, *object.Throw) {
			ms, thr := dateConstructMillis(args)
			if thr != nil {
				return object.Undefined, thr
			}
			o := object.NewObject(ev.Heap, object.ClassDate, proto)
			o.PrimitiveValue = object.Num(ms)
			return object.FromObject(o), nil
		})

	ctorObj, _ := object.Get(ev.Global, "Date", false)
	method(ev, ctorObj.O, "now", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		return object.Num(nowMillis()), nil
	})
	method(ev, ctorObj.O, "parse", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		s, thr := object.ToString(argOr(args, 0))
		if thr != nil {
			return object.Undefined, thr
		}
		ms, ok := parseDateString(s)
		if !ok {
			return object.Num(math.NaN()), nil
		}
		return object.Num(ms), nil
	})
	method(ev, ctorObj.O, "UTC", 7, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		ms, thr := dateConstructMillis(args)
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Num(ms), nil
	})

	method(ev, proto, "valueOf", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		return thisDateValue(this)
	})
	method(ev, proto, "getTime", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		return thisDateValue(this)
	})
	method(ev, proto, "setTime", 1, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		n, thr := object.ToNumber(argOr(args, 0))
		if thr != nil {
			return object.Undefined, thr
		}
		if err := setThisDateValue(this, n); err != nil {
			return object.Undefined, err
		}
		return object.Num(n), nil
	})

	dateField(ev, proto, "getFullYear", func(t time.Time) float64 { return float64(t.Year()) })
	dateField(ev, proto, "getUTCFullYear", func(t time.Time) float64 { return float64(t.Year()) })
	dateField(ev, proto, "getMonth", func(t time.Time) float64 { return float64(t.Month() - 1) })
	dateField(ev, proto, "getUTCMonth", func(t time.Time) float64 { return float64(t.Month() - 1) })
	dateField(ev, proto, "getDate", func(t time.Time) float64 { return float64(t.Day()) })
	dateField(ev, proto, "getUTCDate", func(t time.Time) float64 { return float64(t.Day()) })
	dateField(ev, proto, "getDay", func(t time.Time) float64 { return float64(t.Weekday()) })
	dateField(ev, proto, "getUTCDay", func(t time.Time) float64 { return float64(t.Weekday()) })
	dateField(ev, proto, "getHours", func(t time.Time) float64 { return float64(t.Hour()) })
	dateField(ev, proto, "getUTCHours", func(t time.Time) float64 { return float64(t.Hour()) })
	dateField(ev, proto, "getMinutes", func(t time.Time) float64 { return float64(t.Minute()) })
	dateField(ev, proto, "getUTCMinutes", func(t time.Time) float64 { return float64(t.Minute()) })
	dateField(ev, proto, "getSeconds", func(t time.Time) float64 { return float64(t.Second()) })
	dateField(ev, proto, "getUTCSeconds", func(t time.Time) float64 { return float64(t.Second()) })
	dateField(ev, proto, "getMilliseconds", func(t time.Time) float64 { return float64(t.Nanosecond() / 1e6) })
	dateField(ev, proto, "getUTCMilliseconds", func(t time.Time) float64 { return float64(t.Nanosecond() / 1e6) })
	dateField(ev, proto, "getTimezoneOffset", func(t time.Time) float64 { return 0 })

	method(ev, proto, "setFullYear", 3, dateSetter(func(t time.Time, args []float64) time.Time {
		return time.Date(int(args[0]), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}, 1))
	method(ev, proto, "setMonth", 2, dateSetter(func(t time.Time, args []float64) time.Time {
		return time.Date(t.Year(), time.Month(int(args[0])+1), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}, 1))
	method(ev, proto, "setDate", 1, dateSetter(func(t time.Time, args []float64) time.Time {
		return time.Date(t.Year(), t.Month(), int(args[0]), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}, 1))
	method(ev, proto, "setHours", 4, dateSetter(func(t time.Time, args []float64) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), int(args[0]), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}, 1))
	method(ev, proto, "setMinutes", 3, dateSetter(func(t time.Time, args []float64) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), int(args[0]), t.Second(), t.Nanosecond(), time.UTC)
	}, 1))
	method(ev, proto, "setSeconds", 2, dateSetter(func(t time.Time, args []float64) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), int(args[0]), t.Nanosecond(), time.UTC)
	}, 1))
	method(ev, proto, "setMilliseconds", 1, dateSetter(func(t time.Time, args []float64) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), int(args[0])*1e6, time.UTC)
	}, 1))

	method(ev, proto, "toISOString", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		v, thr := thisDateValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		if math.IsNaN(v.N) {
			return object.Undefined, throwRangeError("Invalid Date")
		}
		return object.Str(timeFromMillis(v.N).Format("2006-01-02T15:04:05.000Z")), nil
	})
	method(ev, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		v, thr := thisDateValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		if math.IsNaN(v.N) {
			return object.Str("Invalid Date"), nil
		}
		return object.Str(timeFromMillis(v.N).Format(dateDisplayLayout)), nil
	})
	method(ev, proto, "toDateString", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		v, thr := thisDateValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Str(timeFromMillis(v.N).Format("Mon Jan 02 2006")), nil
	})
	method(ev, proto, "toTimeString", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		v, thr := thisDateValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Str(timeFromMillis(v.N).Format("15:04:05 GMT+0000")), nil
	})
	method(ev, proto, "toJSON", 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		v, thr := thisDateValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		return object.Str(timeFromMillis(v.N).Format("2006-01-02T15:04:05.000Z")), nil
	})
}

const dateDisplayLayout = "Mon Jan 02 2006 15:04:05 GMT+0000 (UTC)"

func nowMillis() float64 {
	return float64(time.Now().UTC().UnixMilli())
}

func timeFromMillis(ms float64) time.Time {
	return time.UnixMilli(int64(ms)).UTC()
}

func thisDateValue(this object.Value) (object.Value, *object.Throw) {
	if this.IsObject() && this.O.Class == object.ClassDate {
		return this.O.PrimitiveValue, nil
	}
	return object.Undefined, throwTypeError("Date.prototype method called on incompatible receiver")
}

func setThisDateValue(this object.Value, ms float64) *object.Throw {
	if !this.IsObject() || this.O.Class != object.ClassDate {
		return throwTypeError("Date.prototype method called on incompatible receiver")
	}
	this.O.PrimitiveValue = object.Num(ms)
	return nil
}

func dateField(ev *evaluator.Evaluator, proto *object.Object, name string, extract func(time.Time) float64) {
	method(ev, proto, name, 0, func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		v, thr := thisDateValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		if math.IsNaN(v.N) {
			return object.Num(math.NaN()), nil
		}
		return object.Num(extract(timeFromMillis(v.N))), nil
	})
}

func dateSetter(apply func(time.Time, []float64) time.Time, nargs int) nativeFunc {
	return func(this object.Value, args []object.Value) (object.Value, *object.Throw) {
		v, thr := thisDateValue(this)
		if thr != nil {
			return object.Undefined, thr
		}
		t := timeFromMillis(v.N)
		vals := make([]float64, nargs)
		for i := 0; i < nargs && i < len(args); i++ {
			n, thr := object.ToNumber(args[i])
			if thr != nil {
				return object.Undefined, thr
			}
			vals[i] = n
		}
		next := apply(t, vals)
		ms := float64(next.UnixMilli())
		if err := setThisDateValue(this, ms); err != nil {
			return object.Undefined, err
		}
		return object.Num(ms), nil
	}
}

func dateConstructMillis(args []object.Value) (float64, *object.Throw) {
	switch len(args) {
	case 0:
		return nowMillis(), nil
	case 1:
		v := args[0]
		if v.IsObject() && v.O.Class == object.ClassDate {
			return v.O.PrimitiveValue.N, nil
		}
		if v.Kind == object.KindString {
			ms, ok := parseDateString(v.S)
			if !ok {
				return math.NaN(), nil
			}
			return ms, nil
		}
		n, thr := object.ToNumber(v)
		if thr != nil {
			return 0, thr
		}
		return n, nil
	default:
		nums := make([]int, 7)
		nums[2] = 1 // day defaults to 1
		for i := 0; i < len(args) && i < 7; i++ {
			n, thr := object.ToNumber(args[i])
			if thr != nil {
				return 0, thr
			}
			nums[i] = int(n)
		}
		year := nums[0]
		if year >= 0 && year <= 99 {
			year += 1900
		}
		t := time.Date(year, time.Month(nums[1]+1), nums[2], nums[3], nums[4], nums[5], nums[6]*1e6, time.UTC)
		return float64(t.UnixMilli()), nil
	}
}

func parseDateString(s string) (float64, bool) {
	layouts := []string{
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05Z",
		time.RFC3339,
		"2006-01-02",
		dateDisplayLayout,
		"Mon Jan 02 2006 15:04:05 GMT+0000 (UTC)",
		time.RFC1123,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.UnixMilli()), true
		}
	}
	return 0, false
}
