package cli

import (
	"fmt"
	"strconv"
	"strings"

	"btreeidx/internal/btreeindex"
)

func parseDatatype(s string) (btreeindex.Datatype, error) {
	switch strings.ToLower(s) {
	case "int", "integer":
		return btreeindex.TypeInt, nil
	case "double", "float":
		return btreeindex.TypeDouble, nil
	case "string":
		return btreeindex.TypeString, nil
	default:
		return 0, fmt.Errorf("unknown attribute type %q (want int, double or string)", s)
	}
}

func parseKey(t btreeindex.Datatype, s string) (btreeindex.Key, error) {
	switch t {
	case btreeindex.TypeInt:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return btreeindex.Key{}, err
		}
		return btreeindex.IntKey(int32(v)), nil
	case btreeindex.TypeDouble:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return btreeindex.Key{}, err
		}
		return btreeindex.DoubleKey(v), nil
	case btreeindex.TypeString:
		return btreeindex.StringKey(s), nil
	default:
		return btreeindex.Key{}, fmt.Errorf("unknown attribute type %v", t)
	}
}

func parseOperator(s string) (btreeindex.Operator, error) {
	switch strings.ToUpper(s) {
	case "LT":
		return btreeindex.LT, nil
	case "LTE":
		return btreeindex.LTE, nil
	case "GT":
		return btreeindex.GT, nil
	case "GTE":
		return btreeindex.GTE, nil
	default:
		return 0, fmt.Errorf("unknown operator %q (want LT, LTE, GT or GTE)", s)
	}
}
