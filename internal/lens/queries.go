package lens

// CollectFieldsFragment выбирает поля collect-модуля для каждого из пяти
// вариантов. Имена полей должны совпадать со схемой сервера.
const CollectFieldsFragment = `
fragment CollectFields on CollectModule {
  ... on FreeCollectModuleSettings {
    type
    contractAddress
    followerOnly
  }
  ... on FeeCollectModuleSettings {
    type
    recipient
    referralFee
    contractAddress
    followerOnly
    amount {
      asset {
        symbol
        decimals
        address
      }
      value
    }
  }
  ... on LimitedFeeCollectModuleSettings {
    type
    collectLimit
    recipient
    referralFee
    contractAddress
    followerOnly
    amount {
      asset {
        symbol
        decimals
        address
      }
      value
    }
  }
  ... on LimitedTimedFeeCollectModuleSettings {
    type
    collectLimit
    recipient
    endTimestamp
    referralFee
    contractAddress
    followerOnly
    amount {
      asset {
        symbol
        decimals
        address
      }
      value
    }
  }
  ... on TimedFeeCollectModuleSettings {
    type
    recipient
    endTimestamp
    referralFee
    contractAddress
    followerOnly
    amount {
      asset {
        symbol
        decimals
        address
      }
      value
    }
  }
}
`

const reportPublicationMutation = `
mutation ReportPublication($request: ReportPublicationRequest!) {
  reportPublication(request: $request)
}
`

const publicationCollectModuleQuery = `
query PublicationCollectModule($request: PublicationQueryRequest!) {
  publication(request: $request) {
    __typename
    ... on Post {
      collectModule {
        ...CollectFields
      }
    }
    ... on Comment {
      collectModule {
        ...CollectFields
      }
    }
    ... on Mirror {
      collectModule {
        ...CollectFields
      }
    }
  }
}
` + CollectFieldsFragment
