package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ответ сервера со всеми возможными полями: вариант должен взять только свои.
const collectSuperset = `{
	"type": %q,
	"__typename": "Whatever",
	"collectLimit": "100",
	"recipient": "0xrecipient",
	"endTimestamp": "2022-09-01T00:00:00.000Z",
	"referralFee": 2.5,
	"contractAddress": "0xcontract",
	"followerOnly": true,
	"amount": {"asset": {"symbol": "WMATIC", "decimals": 18, "address": "0xasset"}, "value": "1.0"}
}`

func keysOf(t *testing.T, v any) []string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestDecodeCollectModule_VariantFieldSets(t *testing.T) {
	cases := []struct {
		typ    CollectModuleType
		fields []string
	}{
		{CollectModuleFree, []string{"contractAddress", "followerOnly", "type"}},
		{CollectModuleFee, []string{"amount", "contractAddress", "followerOnly", "recipient", "referralFee", "type"}},
		{CollectModuleLimitedFee, []string{"amount", "collectLimit", "contractAddress", "followerOnly", "recipient", "referralFee", "type"}},
		{CollectModuleLimitedTimedFee, []string{"amount", "collectLimit", "contractAddress", "endTimestamp", "followerOnly", "recipient", "referralFee", "type"}},
		{CollectModuleTimedFee, []string{"amount", "contractAddress", "endTimestamp", "followerOnly", "recipient", "referralFee", "type"}},
	}

	for _, tc := range cases {
		t.Run(string(tc.typ), func(t *testing.T) {
			raw := []byte(fmt.Sprintf(collectSuperset, tc.typ))
			module, err := DecodeCollectModule(raw)
			require.NoError(t, err)
			assert.Equal(t, tc.typ, module.ModuleType())
			assert.Equal(t, tc.fields, keysOf(t, module))
		})
	}
}

func TestDecodeCollectModule_ConcreteValues(t *testing.T) {
	module, err := DecodeCollectModule([]byte(fmt.Sprintf(collectSuperset, CollectModuleLimitedTimedFee)))
	require.NoError(t, err)

	settings, ok := module.(LimitedTimedFeeCollectModuleSettings)
	require.True(t, ok)
	assert.Equal(t, "100", settings.CollectLimit)
	assert.Equal(t, 2.5, settings.ReferralFee)
	assert.Equal(t, "WMATIC", settings.Amount.Asset.Symbol)
	assert.Equal(t, 18, settings.Amount.Asset.Decimals)
	assert.Equal(t, "1.0", settings.Amount.Value)
	assert.True(t, settings.FollowerOnly)
}

func TestDecodeCollectModule_UnknownTag(t *testing.T) {
	_, err := DecodeCollectModule([]byte(`{"type": "RevertCollectModule"}`))
	assert.ErrorIs(t, err, ErrUnknownCollectModule)

	_, err = DecodeCollectModule([]byte(`{"contractAddress": "0x1"}`))
	assert.ErrorIs(t, err, ErrUnknownCollectModule)
}

func TestDecodeCollectModule_Empty(t *testing.T) {
	_, err := DecodeCollectModule([]byte(`null`))
	assert.ErrorIs(t, err, ErrNoCollectModule)
}

func TestCollectModuleSettings_RoundTripInEnvelope(t *testing.T) {
	var envelope struct {
		CollectModule CollectModuleSettings `json:"collectModule"`
	}
	body := `{"collectModule": {"type": "FreeCollectModule", "contractAddress": "0x1", "followerOnly": false}}`
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))

	free, ok := envelope.CollectModule.Module.(FreeCollectModuleSettings)
	require.True(t, ok)
	assert.Equal(t, "0x1", free.ContractAddress)

	out, err := json.Marshal(envelope)
	require.NoError(t, err)
	assert.JSONEq(t, body, string(out))
}
