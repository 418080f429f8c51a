package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// CollectModuleType - значение поля type у настроек collect-модуля.
type CollectModuleType string

const (
	CollectModuleFree            CollectModuleType = "FreeCollectModule"
	CollectModuleFee             CollectModuleType = "FeeCollectModule"
	CollectModuleLimitedFee      CollectModuleType = "LimitedFeeCollectModule"
	CollectModuleLimitedTimedFee CollectModuleType = "LimitedTimedFeeCollectModule"
	CollectModuleTimedFee        CollectModuleType = "TimedFeeCollectModule"
)

var (
	ErrUnknownCollectModule = errors.New("unknown collect module type")
	ErrNoCollectModule      = errors.New("collect module is empty")
)

// Erc20 описывает токен, в котором берётся плата.
type Erc20 struct {
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	Address  string `json:"address"`
}

// ModuleAmount - сумма платы за collect.
type ModuleAmount struct {
	Asset Erc20  `json:"asset"`
	Value string `json:"value"`
}

// CollectModule - один из пяти вариантов настроек.
type CollectModule interface {
	ModuleType() CollectModuleType
}

type FreeCollectModuleSettings struct {
	Type            CollectModuleType `json:"type"`
	ContractAddress string            `json:"contractAddress"`
	FollowerOnly    bool              `json:"followerOnly"`
}

type FeeCollectModuleSettings struct {
	Type            CollectModuleType `json:"type"`
	Recipient       string            `json:"recipient"`
	ReferralFee     float64           `json:"referralFee"`
	ContractAddress string            `json:"contractAddress"`
	FollowerOnly    bool              `json:"followerOnly"`
	Amount          ModuleAmount      `json:"amount"`
}

type LimitedFeeCollectModuleSettings struct {
	Type            CollectModuleType `json:"type"`
	CollectLimit    string            `json:"collectLimit"`
	Recipient       string            `json:"recipient"`
	ReferralFee     float64           `json:"referralFee"`
	ContractAddress string            `json:"contractAddress"`
	FollowerOnly    bool              `json:"followerOnly"`
	Amount          ModuleAmount      `json:"amount"`
}

type LimitedTimedFeeCollectModuleSettings struct {
	Type            CollectModuleType `json:"type"`
	CollectLimit    string            `json:"collectLimit"`
	Recipient       string            `json:"recipient"`
	EndTimestamp    string            `json:"endTimestamp"`
	ReferralFee     float64           `json:"referralFee"`
	ContractAddress string            `json:"contractAddress"`
	FollowerOnly    bool              `json:"followerOnly"`
	Amount          ModuleAmount      `json:"amount"`
}

type TimedFeeCollectModuleSettings struct {
	Type            CollectModuleType `json:"type"`
	Recipient       string            `json:"recipient"`
	EndTimestamp    string            `json:"endTimestamp"`
	ReferralFee     float64           `json:"referralFee"`
	ContractAddress string            `json:"contractAddress"`
	FollowerOnly    bool              `json:"followerOnly"`
	Amount          ModuleAmount      `json:"amount"`
}

func (FreeCollectModuleSettings) ModuleType() CollectModuleType { return CollectModuleFree }
func (FeeCollectModuleSettings) ModuleType() CollectModuleType  { return CollectModuleFee }
func (LimitedFeeCollectModuleSettings) ModuleType() CollectModuleType {
	return CollectModuleLimitedFee
}
func (LimitedTimedFeeCollectModuleSettings) ModuleType() CollectModuleType {
	return CollectModuleLimitedTimedFee
}
func (TimedFeeCollectModuleSettings) ModuleType() CollectModuleType { return CollectModuleTimedFee }

// DecodeCollectModule выбирает вариант по полю type.
// Неизвестный тег - ошибка, а не молчаливый выбор одного из пяти.
func DecodeCollectModule(data []byte) (CollectModule, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrNoCollectModule
	}

	var tag struct {
		Type CollectModuleType `json:"type"`
	}
	if err := json.Unmarshal(trimmed, &tag); err != nil {
		return nil, fmt.Errorf("collect module: %w", err)
	}

	var module CollectModule
	var err error
	switch tag.Type {
	case CollectModuleFree:
		module, err = decodeVariant[FreeCollectModuleSettings](trimmed)
	case CollectModuleFee:
		module, err = decodeVariant[FeeCollectModuleSettings](trimmed)
	case CollectModuleLimitedFee:
		module, err = decodeVariant[LimitedFeeCollectModuleSettings](trimmed)
	case CollectModuleLimitedTimedFee:
		module, err = decodeVariant[LimitedTimedFeeCollectModuleSettings](trimmed)
	case CollectModuleTimedFee:
		module, err = decodeVariant[TimedFeeCollectModuleSettings](trimmed)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollectModule, tag.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("collect module %s: %w", tag.Type, err)
	}
	return module, nil
}

func decodeVariant[T CollectModule](data []byte) (CollectModule, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// CollectModuleSettings оборачивает CollectModule для встраивания в ответы.
type CollectModuleSettings struct {
	Module CollectModule
}

func (s *CollectModuleSettings) UnmarshalJSON(data []byte) error {
	module, err := DecodeCollectModule(data)
	if err != nil {
		return err
	}
	s.Module = module
	return nil
}

func (s CollectModuleSettings) MarshalJSON() ([]byte, error) {
	if s.Module == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.Module)
}
