package domain

import "github.com/aws/aws-lambda-go/events"

// Decode convierte un envelope de DynamoDB en un valor nativo: S → string,
// M → map[string]any, L → []any. Cualquier otro tipo devuelve nil.
// La forma de la salida replica la de la entrada y el envelope no se modifica.
func Decode(av events.DynamoDBAttributeValue) any {
	switch av.DataType() {
	case events.DataTypeString:
		return av.String()
	case events.DataTypeMap:
		m := av.Map()
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = Decode(v)
		}
		return out
	case events.DataTypeList:
		l := av.List()
		out := make([]any, 0, len(l))
		for _, v := range l {
			out = append(out, Decode(v))
		}
		return out
	default:
		return nil
	}
}

// IsEmpty indica si un valor decodificado no aporta nada (nil, "", {} o []).
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}

// DecodeString devuelve el string de un envelope S. ok es false para cualquier otro tipo.
func DecodeString(av events.DynamoDBAttributeValue) (string, bool) {
	if av.DataType() != events.DataTypeString {
		return "", false
	}
	return av.String(), true
}
