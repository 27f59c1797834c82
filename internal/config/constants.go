package config

// EnvFilePath is the optional dotenv file read by Load
const EnvFilePath = ".env"
