package config

type (
	InternalConfig struct {
		App    App
		Remote Remote
		JWT    JWT
	}

	DriverConfig struct {
		MongoDB     MongoDB
		Redis       Redis
		RabbitMQ    RabbitMQ
		Minio       Minio
		Attachments Attachments
		Logger      Logger
	}

	App struct {
		Env             string
		Port            string
		Version         string
		EndpointPrefix  string
		MaxRequests     int
		ShutdownTimeout int
	}

	// Remote describes the endpoint encounters are pushed to and patient
	// history is pulled from.
	Remote struct {
		BaseUrl        string
		TimeoutSeconds int
	}

	JWT struct {
		Secret        string
		ExpTimeInHour int
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}

	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}

	// Attachments selects where photo bytes live: "local" keeps the
	// original file-path locator semantics, "minio" stores them as objects.
	Attachments struct {
		Backend  string
		LocalDir string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
