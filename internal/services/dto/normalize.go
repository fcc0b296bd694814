package dto

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// OwnerPaths - алиасы владельца во всех поколениях схемы, новые первыми
var OwnerPaths = []string{"createdBy", "ownerId", "userId", "brand.ownerId"}

// Doc - документ из нескольких источников (каноничная строка, legacy-тело).
// Логическое поле читается по списку путей: источники перебираются по приоритету,
// внутри источника пути по порядку; первое непустое значение побеждает. null и ""
// считаются отсутствием, false и пустой массив - записанным значением.
// Нормализация чистая и не падает: битый JSON просто не попадает в источники.
type Doc struct {
	sources []gjson.Result
}

// NewDoc собирает документ из сырых JSON-объектов в порядке приоритета
func NewDoc(raws ...[]byte) Doc {
	var d Doc
	for _, raw := range raws {
		if len(raw) == 0 || !gjson.ValidBytes(raw) {
			continue
		}
		r := gjson.ParseBytes(raw)
		if r.IsObject() {
			d.sources = append(d.sources, r)
		}
	}
	return d
}

// DocOf сериализует каноничную модель и добавляет legacy-тело вторым источником
func DocOf(v interface{}, legacy []byte) Doc {
	raw, err := json.Marshal(v)
	if err != nil {
		raw = nil
	}
	return NewDoc(raw, legacy)
}

func (d Doc) first(accept func(gjson.Result) bool, paths []string) (gjson.Result, bool) {
	for _, src := range d.sources {
		for _, path := range paths {
			r := src.Get(path)
			if !r.Exists() || r.Type == gjson.Null {
				continue
			}
			if accept(r) {
				return r, true
			}
		}
	}
	return gjson.Result{}, false
}

// String - первая непустая строка (числа приводятся к строке), иначе ""
func (d Doc) String(paths ...string) string {
	return d.StringOr("", paths...)
}

// StringOr - как String, но с явным значением по умолчанию
func (d Doc) StringOr(def string, paths ...string) string {
	r, ok := d.first(func(r gjson.Result) bool {
		switch r.Type {
		case gjson.String:
			return strings.TrimSpace(r.Str) != ""
		case gjson.Number:
			return true
		}
		return false
	}, paths)
	if !ok {
		return def
	}
	return strings.TrimSpace(r.String())
}

// Number - первое число. Строки вида "50,000" тоже принимаются.
func (d Doc) Number(paths ...string) *float64 {
	var out float64
	_, ok := d.first(func(r gjson.Result) bool {
		switch r.Type {
		case gjson.Number:
			out = r.Num
			return true
		case gjson.String:
			s := strings.ReplaceAll(strings.TrimSpace(r.Str), ",", "")
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return false
			}
			out = v
			return true
		}
		return false
	}, paths)
	if !ok {
		return nil
	}
	return &out
}

// Int - первое ненулевое целое, иначе 0
func (d Doc) Int(paths ...string) int64 {
	r, ok := d.first(func(r gjson.Result) bool {
		return r.Type == gjson.Number && r.Int() != 0
	}, paths)
	if !ok {
		return 0
	}
	return r.Int()
}

// Bool - первое булево значение ("true"/"false" строкой тоже). Нет значения - false.
func (d Doc) Bool(paths ...string) bool {
	var out bool
	d.first(func(r gjson.Result) bool {
		switch r.Type {
		case gjson.True, gjson.False:
			out = r.Type == gjson.True
			return true
		case gjson.String:
			v, err := strconv.ParseBool(strings.TrimSpace(r.Str))
			if err != nil {
				return false
			}
			out = v
			return true
		}
		return false
	}, paths)
	return out
}

// Strings - первый массив строк; пустые элементы выбрасываются. Записанный пустой
// массив тоже значение. Всегда не nil.
func (d Doc) Strings(paths ...string) []string {
	out := []string{}
	d.first(func(r gjson.Result) bool {
		if !r.IsArray() {
			return false
		}
		for _, item := range r.Array() {
			if item.Type != gjson.String {
				continue
			}
			if s := strings.TrimSpace(item.Str); s != "" {
				out = append(out, s)
			}
		}
		return true
	}, paths)
	return out
}

// Owner - владелец документа по OwnerPaths
func (d Doc) Owner() string {
	return d.String(OwnerPaths...)
}

// Money - денежное поле в форме {value, negotiable}
type Money struct {
	Value      *float64 `json:"value"`
	Negotiable bool     `json:"negotiable"`
}

// Money: при negotiable=true value всегда null, что бы ни лежало в хранилище
func (d Doc) Money(valuePaths, negotiablePaths []string) Money {
	if d.Bool(negotiablePaths...) {
		return Money{Value: nil, Negotiable: true}
	}
	return Money{Value: d.Number(valuePaths...)}
}

// Общие списки путей для денег
var (
	FeeValuePaths      = []string{"fee.value", "fee", "recruit.pay", "pay"}
	FeeNegotiablePaths = []string{"fee.negotiable", "feeNegotiable", "negotiable", "recruit.negotiable"}
)
