package utility

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ToMap chuyển struct thành map[string]interface{} theo bson tags.
// Dùng khi build update document cho MongoDB từ model.
func ToMap(s interface{}) (map[string]interface{}, error) {
	data, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal struct: %w", err)
	}

	var result map[string]interface{}
	if err := bson.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal to map: %w", err)
	}

	return result, nil
}

// ConvertStruct chuyển đổi một struct sang struct khác qua JSON marshal/unmarshal
func ConvertStruct(source interface{}, target interface{}) (interface{}, error) {
	jsonData, err := json.Marshal(source)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(jsonData, target)
	if err != nil {
		return nil, err
	}

	return target, nil
}
