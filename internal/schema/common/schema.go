package common

const SchemaIdCommon = "https://github.com/rmorlok/authdbinit/schema/common"
