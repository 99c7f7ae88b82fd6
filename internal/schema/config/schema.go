package config

const SchemaIdConfig = "https://github.com/rmorlok/authdbinit/schema/config"
